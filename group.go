// SPDX-License-Identifier: GPL-3.0-or-later

package measured

// MetricGroup is a composable unit owning zero or more metric families
// and/or nested groups. CollectInto performs one full depth-first
// traversal, writing every family's help, type and current values into
// enc. Traversal order is fixed by the static tree shape, so repeated
// calls emit the same names and types; only values move.
type MetricGroup interface {
	CollectInto(enc Encoding)
}

// GroupFunc adapts a function to a MetricGroup.
type GroupFunc func(enc Encoding)

func (f GroupFunc) CollectInto(enc Encoding) { f(enc) }

// ComposedGroup treats two groups as one.
// Collection order is strictly Left then Right.
type ComposedGroup struct {
	Left  MetricGroup
	Right MetricGroup
}

func (g ComposedGroup) CollectInto(enc Encoding) {
	g.Left.CollectInto(enc)
	g.Right.CollectInto(enc)
}

// Compose joins two groups into one.
func Compose(left, right MetricGroup) MetricGroup {
	return ComposedGroup{Left: left, Right: right}
}

// familyGroup is the leaf group for one metric family: help line, type
// line once, then the metric's current value lines.
type familyGroup struct {
	name   MetricName
	help   string
	metric MetricEncoding
}

// NewFamily builds the leaf group for one named metric family.
// Invalid names panic; family names are fixed at startup and a bad one
// is a programmer error.
func NewFamily(name, help string, metric MetricEncoding) MetricGroup {
	return familyGroup{
		name:   MustMetricName(name),
		help:   help,
		metric: metric,
	}
}

func (f familyGroup) CollectInto(enc Encoding) {
	enc.WriteHelp(f.name, f.help)
	f.metric.WriteType(f.name, enc)
	f.metric.CollectInto(f.name, enc)
}
