// SPDX-License-Identifier: GPL-3.0-or-later

// Package label provides ordered label groups and fixed-cardinality label
// sets used to index vectorized metrics.
package label

// Label is one key/value pair.
type Label struct {
	Key   string
	Value string
}

// Group enumerates ordered label key/value pairs.
// A nil Group means no labels.
type Group interface {
	Range(fn func(key, value string) bool)
}

// Labels is an ordered label list acting as a Group.
type Labels []Label

func (ls Labels) Range(fn func(key, value string) bool) {
	for _, l := range ls {
		if !fn(l.Key, l.Value) {
			return
		}
	}
}

// Pair returns a single-pair group.
func Pair(key, value string) Group {
	return pairGroup{key: key, value: value}
}

type pairGroup struct {
	key   string
	value string
}

func (p pairGroup) Range(fn func(key, value string) bool) {
	fn(p.key, p.value)
}

// ComposedGroup joins two groups into one; enumeration order is left then right.
type ComposedGroup struct {
	Left  Group
	Right Group
}

func (g ComposedGroup) Range(fn func(key, value string) bool) {
	stopped := false
	if g.Left != nil {
		g.Left.Range(func(key, value string) bool {
			if !fn(key, value) {
				stopped = true
				return false
			}
			return true
		})
	}
	if stopped || g.Right == nil {
		return
	}
	g.Right.Range(fn)
}

// Compose joins two groups, treating nil as an empty group.
func Compose(left, right Group) Group {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return ComposedGroup{Left: left, Right: right}
}
