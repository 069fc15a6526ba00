// SPDX-License-Identifier: GPL-3.0-or-later

package measured

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/waywardmonkeys/measured/label"
)

// Sparse vectors materialize a cell on first touch instead of
// pre-allocating the full cartesian product. Cells are keyed by the
// xxhash of a canonical packed label key; hash collisions fall back to
// packed-key comparison. Traversal sorts cells by packed key so output
// is deterministic regardless of insertion order.

type sparseKeys struct {
	keys []string
}

func newSparseKeys(keys []string) sparseKeys {
	if len(keys) == 0 {
		panic(errNoLabelKeys)
	}
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			panic(errInvalidLabelKey)
		}
		if _, ok := seen[k]; ok {
			panic(fmt.Errorf("%w: %q", errDuplicateLabelKey, k))
		}
		seen[k] = struct{}{}
	}
	return sparseKeys{keys: append([]string(nil), keys...)}
}

// packSeriesKey joins schema-ordered label values into one canonical key.
func (s sparseKeys) packSeriesKey(values []string) (string, error) {
	if len(values) != len(s.keys) {
		return "", fmt.Errorf("%w: want %d, got %d", errLabelValueCount, len(s.keys), len(values))
	}
	var b strings.Builder
	for i, k := range s.keys {
		b.WriteString(k)
		b.WriteByte('\xff')
		b.WriteString(values[i])
		b.WriteByte('\xff')
	}
	return b.String(), nil
}

func (s sparseKeys) labels(values []string) label.Labels {
	out := make(label.Labels, len(s.keys))
	for i, k := range s.keys {
		out[i] = label.Label{Key: k, Value: values[i]}
	}
	return out
}

func seriesKeyHash(key string) uint64 {
	if key == "" {
		return 0
	}
	return xxhash.Sum64String(key)
}

type sparseCounterCell struct {
	key    string
	labels label.Labels
	metric Counter
}

// SparseCounterVec is a counter vector over arbitrary label values.
type SparseCounterVec struct {
	schema sparseKeys
	mu     sync.RWMutex
	cells  map[uint64][]*sparseCounterCell
}

// NewSparseCounterVec declares the label keys; values are free-form.
func NewSparseCounterVec(keys ...string) *SparseCounterVec {
	return &SparseCounterVec{
		schema: newSparseKeys(keys),
		cells:  make(map[uint64][]*sparseCounterCell),
	}
}

// GetWithLabelValues returns the counter for the given label values,
// creating it on first use.
func (v *SparseCounterVec) GetWithLabelValues(values ...string) (*Counter, error) {
	key, err := v.schema.packSeriesKey(values)
	if err != nil {
		return nil, err
	}
	h := seriesKeyHash(key)

	v.mu.RLock()
	for _, c := range v.cells[h] {
		if c.key == key {
			v.mu.RUnlock()
			return &c.metric, nil
		}
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.cells[h] {
		if c.key == key {
			return &c.metric, nil
		}
	}
	cell := &sparseCounterCell{key: key, labels: v.schema.labels(values)}
	v.cells[h] = append(v.cells[h], cell)
	return &cell.metric, nil
}

// WithLabelValues is GetWithLabelValues that panics on invalid values.
func (v *SparseCounterVec) WithLabelValues(values ...string) *Counter {
	c, err := v.GetWithLabelValues(values...)
	if err != nil {
		panic(err)
	}
	return c
}

func (v *SparseCounterVec) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeCounter)
}

func (v *SparseCounterVec) CollectInto(name MetricNameEncoder, enc Encoding) {
	v.mu.RLock()
	cells := make([]*sparseCounterCell, 0, len(v.cells))
	for _, bucket := range v.cells {
		cells = append(cells, bucket...)
	}
	v.mu.RUnlock()

	sort.Slice(cells, func(i, j int) bool { return cells[i].key < cells[j].key })
	for _, c := range cells {
		enc.WriteSample(name, c.labels, IntValue(int64(c.metric.v.Load())))
	}
}

type sparseGaugeCell struct {
	key    string
	labels label.Labels
	metric Gauge
}

// SparseGaugeVec is a gauge vector over arbitrary label values.
type SparseGaugeVec struct {
	schema sparseKeys
	mu     sync.RWMutex
	cells  map[uint64][]*sparseGaugeCell
}

// NewSparseGaugeVec declares the label keys; values are free-form.
func NewSparseGaugeVec(keys ...string) *SparseGaugeVec {
	return &SparseGaugeVec{
		schema: newSparseKeys(keys),
		cells:  make(map[uint64][]*sparseGaugeCell),
	}
}

// GetWithLabelValues returns the gauge for the given label values,
// creating it on first use.
func (v *SparseGaugeVec) GetWithLabelValues(values ...string) (*Gauge, error) {
	key, err := v.schema.packSeriesKey(values)
	if err != nil {
		return nil, err
	}
	h := seriesKeyHash(key)

	v.mu.RLock()
	for _, c := range v.cells[h] {
		if c.key == key {
			v.mu.RUnlock()
			return &c.metric, nil
		}
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.cells[h] {
		if c.key == key {
			return &c.metric, nil
		}
	}
	cell := &sparseGaugeCell{key: key, labels: v.schema.labels(values)}
	v.cells[h] = append(v.cells[h], cell)
	return &cell.metric, nil
}

// WithLabelValues is GetWithLabelValues that panics on invalid values.
func (v *SparseGaugeVec) WithLabelValues(values ...string) *Gauge {
	g, err := v.GetWithLabelValues(values...)
	if err != nil {
		panic(err)
	}
	return g
}

func (v *SparseGaugeVec) WriteType(name MetricNameEncoder, enc Encoding) {
	enc.WriteType(name, TypeGauge)
}

func (v *SparseGaugeVec) CollectInto(name MetricNameEncoder, enc Encoding) {
	v.mu.RLock()
	cells := make([]*sparseGaugeCell, 0, len(v.cells))
	for _, bucket := range v.cells {
		cells = append(cells, bucket...)
	}
	v.mu.RUnlock()

	sort.Slice(cells, func(i, j int) bool { return cells[i].key < cells[j].key })
	for _, c := range cells {
		enc.WriteSample(name, c.labels, IntValue(c.metric.v.Load()))
	}
}
