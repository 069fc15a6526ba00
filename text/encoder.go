// SPDX-License-Identifier: GPL-3.0-or-later

// Package text renders collected metrics in the Prometheus text
// exposition format.
package text

import (
	"bytes"
	"strings"

	"github.com/waywardmonkeys/measured"
	"github.com/waywardmonkeys/measured/label"
)

// Encoder is a measured.Encoding target producing the classic text format:
//
//	# HELP <name> <help>
//	# TYPE <name> <counter|gauge|histogram>
//	<name>{k="v",...} <value>
//
// with one blank line between family blocks. The buffer is retained
// across passes; Finish returns the rendered snapshot and resets it.
type Encoder struct {
	buf     bytes.Buffer
	scratch []byte
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// WriteHelp starts a new family block.
func (e *Encoder) WriteHelp(name measured.MetricNameEncoder, help string) {
	if e.buf.Len() > 0 {
		e.buf.WriteByte('\n')
	}
	e.buf.WriteString("# HELP ")
	e.writeName(name)
	e.buf.WriteByte(' ')
	e.writeEscapedHelp(help)
	e.buf.WriteByte('\n')
}

// WriteType writes the family type declaration.
func (e *Encoder) WriteType(name measured.MetricNameEncoder, t measured.MetricType) {
	e.buf.WriteString("# TYPE ")
	e.writeName(name)
	e.buf.WriteByte(' ')
	e.buf.WriteString(t.String())
	e.buf.WriteByte('\n')
}

// WriteSample writes one value line. A nil labels group renders bare.
func (e *Encoder) WriteSample(name measured.MetricNameEncoder, labels label.Group, v measured.Value) {
	e.writeName(name)
	if labels != nil {
		first := true
		labels.Range(func(key, value string) bool {
			if first {
				e.buf.WriteByte('{')
				first = false
			} else {
				e.buf.WriteByte(',')
			}
			e.buf.WriteString(key)
			e.buf.WriteString(`="`)
			e.writeEscapedLabelValue(value)
			e.buf.WriteByte('"')
			return true
		})
		if !first {
			e.buf.WriteByte('}')
		}
	}
	e.buf.WriteByte(' ')
	e.scratch = v.AppendText(e.scratch[:0])
	e.buf.Write(e.scratch)
	e.buf.WriteByte('\n')
}

// Finish returns everything written since the last Finish and resets the
// encoder, retaining the underlying storage for the next pass.
func (e *Encoder) Finish() string {
	out := e.buf.String()
	e.buf.Reset()
	return out
}

func (e *Encoder) writeName(name measured.MetricNameEncoder) {
	e.scratch = name.AppendName(e.scratch[:0])
	e.buf.Write(e.scratch)
}

func (e *Encoder) writeEscapedHelp(s string) {
	if !strings.ContainsAny(s, "\\\n") {
		e.buf.WriteString(s)
		return
	}
	for _, r := range s {
		switch r {
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		default:
			e.buf.WriteRune(r)
		}
	}
}

func (e *Encoder) writeEscapedLabelValue(s string) {
	if !strings.ContainsAny(s, "\\\"\n") {
		e.buf.WriteString(s)
		return
	}
	for _, r := range s {
		switch r {
		case '\\':
			e.buf.WriteString(`\\`)
		case '"':
			e.buf.WriteString(`\"`)
		case '\n':
			e.buf.WriteString(`\n`)
		default:
			e.buf.WriteRune(r)
		}
	}
}
