// SPDX-License-Identifier: GPL-3.0-or-later

package text

import (
	"strings"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/require"

	"github.com/waywardmonkeys/measured"
	"github.com/waywardmonkeys/measured/label"
)

var fixtureRoutes = []string{
	"/api/v1/users",
	"/api/v1/users/:id",
	"/api/v1/products",
	"/api/v1/products/:id",
	"/api/v1/products/:id/owner",
	"/api/v1/products/:id/purchase",
}

// fixtureGroup is the worked example: an unlabelled counter composed with
// a subsystem holding a counter vec over kind x route.
func fixtureGroup() measured.MetricGroup {
	set := label.NewSet(
		label.NewFixed("kind", "user", "internal", "network"),
		label.NewFixed("route", fixtureRoutes...),
	)
	return measured.Compose(
		measured.NewFamily("events_total", "help text", measured.NewCounter()),
		measured.Subsystem("http_request",
			measured.NewFamily("errors", "more help wow", measured.NewCounterVec(set)),
		),
	)
}

func fixtureWant() string {
	var b strings.Builder
	b.WriteString("# HELP events_total help text\n")
	b.WriteString("# TYPE events_total counter\n")
	b.WriteString("events_total 0\n")
	b.WriteString("\n")
	b.WriteString("# HELP http_request_errors more help wow\n")
	b.WriteString("# TYPE http_request_errors counter\n")
	for _, kind := range []string{"user", "internal", "network"} {
		for _, route := range fixtureRoutes {
			b.WriteString(`http_request_errors{kind="` + kind + `",route="` + route + `"} 0` + "\n")
		}
	}
	return b.String()
}

func TestEncoderEndToEnd(t *testing.T) {
	enc := NewEncoder()
	fixtureGroup().CollectInto(enc)

	require.Equal(t, fixtureWant(), enc.Finish())
}

func TestEncoderOutputParsesAsExposition(t *testing.T) {
	enc := NewEncoder()
	fixtureGroup().CollectInto(enc)
	out := enc.Finish()

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, families, 2)

	events := families["events_total"]
	require.NotNil(t, events)
	require.Equal(t, "COUNTER", events.GetType().String())
	require.Equal(t, "help text", events.GetHelp())
	require.Len(t, events.GetMetric(), 1)
	require.Equal(t, float64(0), events.GetMetric()[0].GetCounter().GetValue())

	errs := families["http_request_errors"]
	require.NotNil(t, errs)
	require.Equal(t, "COUNTER", errs.GetType().String())
	require.Len(t, errs.GetMetric(), 18)
	for _, m := range errs.GetMetric() {
		require.Len(t, m.GetLabel(), 2)
	}
}

func TestEncoderScenarios(t *testing.T) {
	tests := map[string]struct {
		run func(t *testing.T)
	}{
		"blank line separates family blocks": {
			run: func(t *testing.T) {
				a := measured.NewFamily("a_total", "a help", measured.NewCounter())
				b := measured.NewFamily("b_total", "b help", measured.NewCounter())

				enc := NewEncoder()
				measured.Compose(a, b).CollectInto(enc)
				out := enc.Finish()

				require.Equal(t, strings.Join([]string{
					"# HELP a_total a help",
					"# TYPE a_total counter",
					"a_total 0",
					"",
					"# HELP b_total b help",
					"# TYPE b_total counter",
					"b_total 0",
					"",
				}, "\n"), out)
				require.False(t, strings.HasSuffix(out, "\n\n"))
			},
		},
		"finish resets for the next pass": {
			run: func(t *testing.T) {
				c := measured.NewCounter()
				g := measured.NewFamily("events_total", "h", c)

				enc := NewEncoder()
				g.CollectInto(enc)
				first := enc.Finish()

				c.Inc()
				g.CollectInto(enc)
				second := enc.Finish()

				require.Contains(t, first, "events_total 0\n")
				require.Contains(t, second, "events_total 1\n")
				require.NotContains(t, second, "events_total 0\n")
			},
		},
		"help text escapes backslash and newline": {
			run: func(t *testing.T) {
				g := measured.NewFamily("m_total", "line1\nline2 \\ done", measured.NewCounter())

				enc := NewEncoder()
				g.CollectInto(enc)

				require.Contains(t, enc.Finish(), `# HELP m_total line1\nline2 \\ done`+"\n")
			},
		},
		"label values escape quote backslash and newline": {
			run: func(t *testing.T) {
				vec := measured.NewSparseCounterVec("path")
				vec.WithLabelValues("a\"b\\c\nd").Inc()

				enc := NewEncoder()
				measured.NewFamily("hits_total", "h", vec).CollectInto(enc)

				require.Contains(t, enc.Finish(), `hits_total{path="a\"b\\c\nd"} 1`+"\n")
			},
		},
		"histogram family renders buckets sum and count": {
			run: func(t *testing.T) {
				h := measured.NewHistogram(0.5, 1)
				h.Observe(0.25)
				h.Observe(2)

				enc := NewEncoder()
				measured.NewFamily("latency_seconds", "request latency", h).CollectInto(enc)

				require.Equal(t, strings.Join([]string{
					"# HELP latency_seconds request latency",
					"# TYPE latency_seconds histogram",
					`latency_seconds_bucket{le="0.5"} 1`,
					`latency_seconds_bucket{le="1"} 1`,
					`latency_seconds_bucket{le="+Inf"} 2`,
					"latency_seconds_sum 2.25",
					"latency_seconds_count 2",
					"",
				}, "\n"), enc.Finish())
			},
		},
		"namespaced histogram keeps suffixes after the prefix": {
			run: func(t *testing.T) {
				h := measured.NewHistogram(1)
				g := measured.Subsystem("db", measured.NewFamily("query_seconds", "q", h))

				enc := NewEncoder()
				g.CollectInto(enc)
				out := enc.Finish()

				require.Contains(t, out, `db_query_seconds_bucket{le="1"} 0`+"\n")
				require.Contains(t, out, "db_query_seconds_sum 0\n")
				require.Contains(t, out, "db_query_seconds_count 0\n")
			},
		},
		"gauge renders negative and float values": {
			run: func(t *testing.T) {
				g := measured.NewGauge()
				g.Set(-5)
				f := measured.NewFloatGauge()
				f.Set(0.125)

				enc := NewEncoder()
				measured.Compose(
					measured.NewFamily("depth", "d", g),
					measured.NewFamily("ratio", "r", f),
				).CollectInto(enc)
				out := enc.Finish()

				require.Contains(t, out, "depth -5\n")
				require.Contains(t, out, "ratio 0.125\n")
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, tc.run)
	}
}
