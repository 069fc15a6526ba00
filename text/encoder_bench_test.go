// SPDX-License-Identifier: GPL-3.0-or-later

package text

import (
	"strconv"
	"testing"

	"github.com/waywardmonkeys/measured"
	"github.com/waywardmonkeys/measured/label"
)

func BenchmarkCollectPass(b *testing.B) {
	tests := map[string]struct {
		group func() measured.MetricGroup
	}{
		"dense_vec_100_series": {
			group: func() measured.MetricGroup {
				values := make([]string, 100)
				for i := range values {
					values[i] = strconv.Itoa(i)
				}
				vec := measured.NewCounterVec(label.NewFixed("shard", values...))
				return measured.NewFamily("ops_total", "ops", vec)
			},
		},
		"sparse_vec_100_series": {
			group: func() measured.MetricGroup {
				vec := measured.NewSparseCounterVec("shard")
				for i := 0; i < 100; i++ {
					vec.WithLabelValues(strconv.Itoa(i)).Inc()
				}
				return measured.NewFamily("ops_total", "ops", vec)
			},
		},
		"namespaced_histogram": {
			group: func() measured.MetricGroup {
				h := measured.NewHistogram(0.01, 0.1, 1, 10)
				for i := 0; i < 1000; i++ {
					h.Observe(float64(i) / 100)
				}
				return measured.Subsystem("http", measured.NewFamily("latency_seconds", "latency", h))
			},
		},
	}

	for name, tc := range tests {
		b.Run(name, func(b *testing.B) {
			group := tc.group()
			enc := NewEncoder()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				group.CollectInto(enc)
				_ = enc.Finish()
			}
		})
	}
}
