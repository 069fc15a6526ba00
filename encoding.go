// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import (
	"math"
	"strconv"

	"github.com/waywardmonkeys/measured/label"
)

// MetricType is the exposition-format family type.
type MetricType uint8

const (
	TypeCounter MetricType = iota
	TypeGauge
	TypeHistogram
)

func (t MetricType) String() string {
	switch t {
	case TypeCounter:
		return "counter"
	case TypeGauge:
		return "gauge"
	case TypeHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Encoding is the sink one collection pass writes into.
// The target is borrowed for the duration of a single CollectInto call;
// no group retains it afterwards. All writes are total at this layer --
// a fallible concrete target buffers its own errors and surfaces them
// after the traversal completes.
type Encoding interface {
	// WriteHelp writes the help text for a metric family.
	WriteHelp(name MetricNameEncoder, help string)
	// WriteType writes the type declaration for a metric family.
	WriteType(name MetricNameEncoder, t MetricType)
	// WriteSample writes one value line. A nil labels group means no labels.
	WriteSample(name MetricNameEncoder, labels label.Group, v Value)
}

// MetricEncoding is implemented by metric values that render themselves
// into an Encoding target. WriteType is emitted exactly once per family;
// CollectInto writes one value line per live label combination.
type MetricEncoding interface {
	WriteType(name MetricNameEncoder, enc Encoding)
	CollectInto(name MetricNameEncoder, enc Encoding)
}

// Value is one rendered sample value.
type Value struct {
	f     float64
	i     int64
	float bool
}

// IntValue wraps an integer sample.
func IntValue(v int64) Value { return Value{i: v} }

// FloatValue wraps a floating-point sample.
func FloatValue(v float64) Value { return Value{f: v, float: true} }

// AppendText appends the canonical exposition rendering of v to dst.
func (v Value) AppendText(dst []byte) []byte {
	if !v.float {
		return strconv.AppendInt(dst, v.i, 10)
	}
	switch {
	case math.IsInf(v.f, +1):
		return append(dst, "+Inf"...)
	case math.IsInf(v.f, -1):
		return append(dst, "-Inf"...)
	case math.IsNaN(v.f):
		return append(dst, "NaN"...)
	}
	return strconv.AppendFloat(dst, v.f, 'g', -1, 64)
}
