// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import "errors"

var (
	errInvalidMetricName  = errors.New("measured: invalid metric name")
	errInvalidBounds      = errors.New("measured: histogram bounds must be finite and strictly increasing")
	errInvalidSampleValue = errors.New("measured: invalid sample value (NaN/Inf)")
	errNilLabelSet        = errors.New("measured: vec requires a label set")
	errNoLabelKeys        = errors.New("measured: sparse vec requires label keys")
	errInvalidLabelKey    = errors.New("measured: invalid label key")
	errDuplicateLabelKey  = errors.New("measured: duplicate label key")
	errLabelValueCount    = errors.New("measured: label values count does not match label keys")
)
