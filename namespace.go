// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import "github.com/waywardmonkeys/measured/label"

// Namespacing is one decorator playing two roles: a group whose inner
// metrics are renamed, and an encoding target that renames every write
// flowing through it. Both roles share namespacedName, so prefix
// concatenation happens in exactly one place and the two compose
// identically at any nesting depth.
//
// Prefixes are opaque strings concatenated verbatim onto the base name;
// any separator must be part of the prefix itself.

// Namespaced wraps a group so every metric name beneath it gains prefix.
func Namespaced(prefix string, group MetricGroup) MetricGroup {
	return namespacedGroup{prefix: prefix, inner: group}
}

// NamespacedEncoding wraps a target so every name written through it
// gains prefix.
func NamespacedEncoding(prefix string, enc Encoding) Encoding {
	return namespacedEncoding{prefix: prefix, inner: enc}
}

// Subsystem is the conventional form of Namespaced: name plus a "_"
// separator, matching how exposition names are namespaced in practice.
func Subsystem(name string, group MetricGroup) MetricGroup {
	return Namespaced(name+"_", group)
}

type namespacedGroup struct {
	prefix string
	inner  MetricGroup
}

func (g namespacedGroup) CollectInto(enc Encoding) {
	g.inner.CollectInto(namespacedEncoding{prefix: g.prefix, inner: enc})
}

type namespacedEncoding struct {
	prefix string
	inner  Encoding
}

func (e namespacedEncoding) WriteHelp(name MetricNameEncoder, help string) {
	e.inner.WriteHelp(namespacedName{prefix: e.prefix, inner: name}, help)
}

func (e namespacedEncoding) WriteType(name MetricNameEncoder, t MetricType) {
	e.inner.WriteType(namespacedName{prefix: e.prefix, inner: name}, t)
}

func (e namespacedEncoding) WriteSample(name MetricNameEncoder, labels label.Group, v Value) {
	e.inner.WriteSample(namespacedName{prefix: e.prefix, inner: name}, labels, v)
}

// namespacedName prepends prefix lazily; nested prefixes render
// outermost first.
type namespacedName struct {
	prefix string
	inner  MetricNameEncoder
}

func (n namespacedName) AppendName(dst []byte) []byte {
	dst = append(dst, n.prefix...)
	return n.inner.AppendName(dst)
}
