// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import (
	"fmt"

	"github.com/prometheus/common/model"
)

// MetricNameEncoder renders a composite metric name. Namespace prefixes and
// family suffixes compose by nesting encoders; rendering happens once, at
// the concrete target, never by eager string concatenation along the way.
type MetricNameEncoder interface {
	// AppendName appends the rendered name to dst.
	AppendName(dst []byte) []byte
}

// MetricName is a validated base metric name.
type MetricName string

// NewMetricName validates name against the classic Prometheus name rules.
func NewMetricName(name string) (MetricName, error) {
	if !model.IsValidLegacyMetricName(name) {
		return "", fmt.Errorf("%w: %q", errInvalidMetricName, name)
	}
	return MetricName(name), nil
}

// MustMetricName is NewMetricName that panics on invalid names.
func MustMetricName(name string) MetricName {
	n, err := NewMetricName(name)
	if err != nil {
		panic(err)
	}
	return n
}

func (n MetricName) AppendName(dst []byte) []byte {
	return append(dst, n...)
}

// Suffix is a per-series family suffix (histogram sub-series).
type Suffix string

const (
	SuffixBucket Suffix = "_bucket"
	SuffixSum    Suffix = "_sum"
	SuffixCount  Suffix = "_count"
)

// WithSuffix returns a name encoder rendering name followed by suffix.
func WithSuffix(name MetricNameEncoder, suffix Suffix) MetricNameEncoder {
	return suffixedName{inner: name, suffix: suffix}
}

type suffixedName struct {
	inner  MetricNameEncoder
	suffix Suffix
}

func (n suffixedName) AppendName(dst []byte) []byte {
	dst = n.inner.AppendName(dst)
	return append(dst, n.suffix...)
}
