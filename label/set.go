// SPDX-License-Identifier: GPL-3.0-or-later

package label

import (
	"fmt"
)

// Set is a fixed-cardinality label schema with dense indexing.
// Index positions enumerate every key/value combination the schema allows,
// with the first key most significant.
type Set interface {
	Cardinality() int
	Keys() []string
	// GroupAt returns the label group at dense index i, keys in declaration order.
	GroupAt(i int) Group
	// Index resolves one value per key (in key order) to the dense index.
	Index(values ...string) (int, error)
}

// Fixed enumerates the allowed values of a single label key, in declaration order.
// A Fixed is itself a Set of cardinality len(values).
type Fixed struct {
	key    string
	values []string
	index  map[string]int
}

// NewFixed declares a fixed-cardinality label key.
// Empty keys, empty value lists and duplicate values panic.
func NewFixed(key string, values ...string) *Fixed {
	if key == "" {
		panic(errInvalidLabelKey)
	}
	if len(values) == 0 {
		panic(fmt.Errorf("%w: %q has no values", errEmptyLabelSet, key))
	}
	index := make(map[string]int, len(values))
	for i, v := range values {
		if _, ok := index[v]; ok {
			panic(fmt.Errorf("%w: %q=%q", errDuplicateLabelValue, key, v))
		}
		index[v] = i
	}
	return &Fixed{
		key:    key,
		values: append([]string(nil), values...),
		index:  index,
	}
}

func (f *Fixed) Cardinality() int { return len(f.values) }

func (f *Fixed) Keys() []string { return []string{f.key} }

func (f *Fixed) GroupAt(i int) Group {
	return Labels{{Key: f.key, Value: f.values[i]}}
}

func (f *Fixed) Index(values ...string) (int, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: want 1, got %d", errLabelValueCount, len(values))
	}
	i, ok := f.index[values[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q=%q", errUnknownLabelValue, f.key, values[0])
	}
	return i, nil
}

// product is the cartesian composition of Fixed columns.
// Dense index decomposes first-column-major.
type product struct {
	columns     []*Fixed
	keys        []string
	cardinality int
}

// NewSet composes Fixed columns into one schema.
// Duplicate keys across columns panic.
func NewSet(columns ...*Fixed) Set {
	if len(columns) == 0 {
		panic(errEmptyLabelSet)
	}
	if len(columns) == 1 {
		return columns[0]
	}

	keys := make([]string, 0, len(columns))
	seen := make(map[string]struct{}, len(columns))
	cardinality := 1
	for _, c := range columns {
		if _, ok := seen[c.key]; ok {
			panic(fmt.Errorf("%w: %q", errDuplicateLabelKey, c.key))
		}
		seen[c.key] = struct{}{}
		keys = append(keys, c.key)
		cardinality *= len(c.values)
	}

	return &product{
		columns:     append([]*Fixed(nil), columns...),
		keys:        keys,
		cardinality: cardinality,
	}
}

func (p *product) Cardinality() int { return p.cardinality }

func (p *product) Keys() []string { return p.keys }

func (p *product) GroupAt(i int) Group {
	out := make(Labels, len(p.columns))
	rem := i
	for c := len(p.columns) - 1; c >= 0; c-- {
		col := p.columns[c]
		out[c] = Label{Key: col.key, Value: col.values[rem%len(col.values)]}
		rem /= len(col.values)
	}
	return out
}

func (p *product) Index(values ...string) (int, error) {
	if len(values) != len(p.columns) {
		return 0, fmt.Errorf("%w: want %d, got %d", errLabelValueCount, len(p.columns), len(values))
	}
	idx := 0
	for c, col := range p.columns {
		i, ok := col.index[values[c]]
		if !ok {
			return 0, fmt.Errorf("%w: %q=%q", errUnknownLabelValue, col.key, values[c])
		}
		idx = idx*len(col.values) + i
	}
	return idx, nil
}
