// SPDX-License-Identifier: GPL-3.0-or-later

package label

import "errors"

var (
	errInvalidLabelKey     = errors.New("label: invalid label key")
	errDuplicateLabelKey   = errors.New("label: duplicate label key")
	errDuplicateLabelValue = errors.New("label: duplicate label value")
	errEmptyLabelSet       = errors.New("label: label set has no columns")
	errLabelValueCount     = errors.New("label: label values count does not match label keys")
	errUnknownLabelValue   = errors.New("label: unknown label value")
)
