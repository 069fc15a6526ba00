// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import (
	"sync/atomic"

	"github.com/waywardmonkeys/measured/label"
)

// Counter is a monotonically increasing integer metric.
// All methods are safe for concurrent use; a collection pass reads the
// current total without blocking writers.
type Counter struct {
	v atomic.Uint64
}

// NewCounter creates a counter starting at zero.
func NewCounter() *Counter { return &Counter{} }

// Inc adds one.
func (c *Counter) Inc() { c.v.Add(1) }

// Add adds delta.
func (c *Counter) Add(delta uint64) { c.v.Add(delta) }

// Total returns the current value.
func (c *Counter) Total() uint64 { return c.v.Load() }

func (c *Counter) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeCounter)
}

func (c *Counter) CollectInto(name MetricNameEncoder, enc Encoding) {
	enc.WriteSample(name, nil, IntValue(int64(c.v.Load())))
}

// CounterVec is a counter per label combination of a fixed label set.
// Every combination is rendered each pass, zero-valued cells included.
type CounterVec struct {
	set   label.Set
	cells []Counter
}

// NewCounterVec creates one zeroed counter cell per dense index of set.
func NewCounterVec(set label.Set) *CounterVec {
	if set == nil {
		panic(errNilLabelSet)
	}
	return &CounterVec{
		set:   set,
		cells: make([]Counter, set.Cardinality()),
	}
}

// GetWithLabelValues returns the counter for the given label values,
// one value per label key in key order.
func (v *CounterVec) GetWithLabelValues(values ...string) (*Counter, error) {
	i, err := v.set.Index(values...)
	if err != nil {
		return nil, err
	}
	return &v.cells[i], nil
}

// WithLabelValues is GetWithLabelValues that panics on invalid values.
func (v *CounterVec) WithLabelValues(values ...string) *Counter {
	c, err := v.GetWithLabelValues(values...)
	if err != nil {
		panic(err)
	}
	return c
}

func (v *CounterVec) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeCounter)
}

func (v *CounterVec) CollectInto(name MetricNameEncoder, enc Encoding) {
	for i := range v.cells {
		enc.WriteSample(name, v.set.GroupAt(i), IntValue(int64(v.cells[i].v.Load())))
	}
}
