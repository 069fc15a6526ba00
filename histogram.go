// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import (
	"math"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/waywardmonkeys/measured/label"
)

const histogramBucketLabel = "le"

// Histogram observes samples into fixed buckets. Bounds are upper bucket
// bounds, strictly increasing; the +Inf bucket is implicit. Rendering
// emits cumulative _bucket series, then _sum and _count.
type Histogram struct {
	bounds  []float64
	buckets []atomic.Uint64 // per-bucket counts; last slot is the +Inf overflow
	count   atomic.Uint64
	sum     atomicFloat
}

// NewHistogram creates a histogram with the given upper bounds.
// A trailing +Inf bound is accepted and stripped; the +Inf bucket is
// always implicit. Invalid bounds panic.
func NewHistogram(bounds ...float64) *Histogram {
	bounds = normalizeBounds(bounds)
	return &Histogram{
		bounds:  bounds,
		buckets: make([]atomic.Uint64, len(bounds)+1),
	}
}

func normalizeBounds(bounds []float64) []float64 {
	out := make([]float64, 0, len(bounds))
	prev := math.Inf(-1)
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, -1) {
			panic(errInvalidBounds)
		}
		if math.IsInf(b, +1) {
			if i != len(bounds)-1 {
				panic(errInvalidBounds)
			}
			// +Inf bucket is implicit.
			continue
		}
		if b <= prev {
			panic(errInvalidBounds)
		}
		out = append(out, b)
		prev = b
	}
	return out
}

// Observe adds one sample. NaN and Inf panic.
func (h *Histogram) Observe(v float64) {
	mustFiniteSample(v)
	h.buckets[findBucket(h.bounds, v)].Add(1)
	h.count.Add(1)
	h.sum.add(v)
}

// Bounds returns the configured upper bounds, excluding +Inf.
func (h *Histogram) Bounds() []float64 {
	return append([]float64(nil), h.bounds...)
}

func (h *Histogram) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeHistogram)
}

func (h *Histogram) CollectInto(name MetricNameEncoder, enc Encoding) {
	h.collectCell(name, nil, enc)
}

// collectCell writes one histogram's series, with base labels prepended.
func (h *Histogram) collectCell(name MetricNameEncoder, base label.Group, enc Encoding) {
	bucketName := WithSuffix(name, SuffixBucket)
	cumulative := uint64(0)
	for i, ub := range h.bounds {
		cumulative += h.buckets[i].Load()
		labels := label.Compose(base, label.Pair(histogramBucketLabel, formatBucketBound(ub)))
		enc.WriteSample(bucketName, labels, IntValue(int64(cumulative)))
	}
	cumulative += h.buckets[len(h.bounds)].Load()
	labels := label.Compose(base, label.Pair(histogramBucketLabel, "+Inf"))
	enc.WriteSample(bucketName, labels, IntValue(int64(cumulative)))

	enc.WriteSample(WithSuffix(name, SuffixSum), base, FloatValue(h.sum.load()))
	enc.WriteSample(WithSuffix(name, SuffixCount), base, IntValue(int64(h.count.Load())))
}

// findBucket returns the index of the bucket for value, or len(bounds) for +Inf.
func findBucket(bounds []float64, value float64) int {
	n := len(bounds)
	if n == 0 {
		return 0
	}
	if value <= bounds[0] {
		return 0
	}
	if value > bounds[n-1] {
		return n
	}
	if n < 35 {
		for i, b := range bounds {
			if value <= b {
				return i
			}
		}
		return n
	}
	return sort.SearchFloat64s(bounds, value)
}

func formatBucketBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// HistogramVec is a histogram per label combination of a fixed label set.
// All cells share one bounds schema.
type HistogramVec struct {
	set   label.Set
	cells []Histogram
}

// NewHistogramVec creates one zeroed histogram cell per dense index of set.
func NewHistogramVec(set label.Set, bounds ...float64) *HistogramVec {
	if set == nil {
		panic(errNilLabelSet)
	}
	bounds = normalizeBounds(bounds)
	cells := make([]Histogram, set.Cardinality())
	for i := range cells {
		cells[i].bounds = bounds
		cells[i].buckets = make([]atomic.Uint64, len(bounds)+1)
	}
	return &HistogramVec{set: set, cells: cells}
}

// GetWithLabelValues returns the histogram for the given label values,
// one value per label key in key order.
func (v *HistogramVec) GetWithLabelValues(values ...string) (*Histogram, error) {
	i, err := v.set.Index(values...)
	if err != nil {
		return nil, err
	}
	return &v.cells[i], nil
}

// WithLabelValues is GetWithLabelValues that panics on invalid values.
func (v *HistogramVec) WithLabelValues(values ...string) *Histogram {
	h, err := v.GetWithLabelValues(values...)
	if err != nil {
		panic(err)
	}
	return h
}

func (v *HistogramVec) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeHistogram)
}

func (v *HistogramVec) CollectInto(name MetricNameEncoder, enc Encoding) {
	for i := range v.cells {
		v.cells[i].collectCell(name, v.set.GroupAt(i), enc)
	}
}
