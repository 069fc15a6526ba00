// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import (
	"math"
	"sync/atomic"

	"github.com/waywardmonkeys/measured/label"
)

// Gauge is an integer metric that can go up and down.
type Gauge struct {
	v atomic.Int64
}

// NewGauge creates a gauge starting at zero.
func NewGauge() *Gauge { return &Gauge{} }

// Set overwrites the current value.
func (g *Gauge) Set(v int64) { g.v.Store(v) }

// Inc adds one.
func (g *Gauge) Inc() { g.v.Add(1) }

// Dec subtracts one.
func (g *Gauge) Dec() { g.v.Add(-1) }

// Add adds delta, which may be negative.
func (g *Gauge) Add(delta int64) { g.v.Add(delta) }

// Value returns the current value.
func (g *Gauge) Value() int64 { return g.v.Load() }

func (g *Gauge) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeGauge)
}

func (g *Gauge) CollectInto(name MetricNameEncoder, enc Encoding) {
	enc.WriteSample(name, nil, IntValue(g.v.Load()))
}

// atomicFloat is a float64 stored as atomic bits with CAS accumulation.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *atomicFloat) load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat) add(delta float64) {
	for {
		old := f.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if f.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// FloatGauge is a float64 gauge.
type FloatGauge struct {
	v atomicFloat
}

// NewFloatGauge creates a float gauge starting at zero.
func NewFloatGauge() *FloatGauge { return &FloatGauge{} }

// Set overwrites the current value. NaN and Inf panic.
func (g *FloatGauge) Set(v float64) {
	mustFiniteSample(v)
	g.v.store(v)
}

// Add adds delta, which may be negative. NaN and Inf panic.
func (g *FloatGauge) Add(delta float64) {
	mustFiniteSample(delta)
	g.v.add(delta)
}

// Value returns the current value.
func (g *FloatGauge) Value() float64 { return g.v.load() }

func (g *FloatGauge) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeGauge)
}

func (g *FloatGauge) CollectInto(name MetricNameEncoder, enc Encoding) {
	enc.WriteSample(name, nil, FloatValue(g.v.load()))
}

// GaugeVec is a gauge per label combination of a fixed label set.
type GaugeVec struct {
	set   label.Set
	cells []Gauge
}

// NewGaugeVec creates one zeroed gauge cell per dense index of set.
func NewGaugeVec(set label.Set) *GaugeVec {
	if set == nil {
		panic(errNilLabelSet)
	}
	return &GaugeVec{
		set:   set,
		cells: make([]Gauge, set.Cardinality()),
	}
}

// GetWithLabelValues returns the gauge for the given label values,
// one value per label key in key order.
func (v *GaugeVec) GetWithLabelValues(values ...string) (*Gauge, error) {
	i, err := v.set.Index(values...)
	if err != nil {
		return nil, err
	}
	return &v.cells[i], nil
}

// WithLabelValues is GetWithLabelValues that panics on invalid values.
func (v *GaugeVec) WithLabelValues(values ...string) *Gauge {
	g, err := v.GetWithLabelValues(values...)
	if err != nil {
		panic(err)
	}
	return g
}

func (v *GaugeVec) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeGauge)
}

func (v *GaugeVec) CollectInto(name MetricNameEncoder, enc Encoding) {
	for i := range v.cells {
		enc.WriteSample(name, v.set.GroupAt(i), IntValue(v.cells[i].v.Load()))
	}
}

func mustFiniteSample(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(errInvalidSampleValue)
	}
}
