package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/waterfall/pkg/observability"
)

// Metrics exports render events as Prometheus series.
type Metrics struct {
	plots       *prometheus.CounterVec
	exports     *prometheus.CounterVec
	exportBytes *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ observability.RenderHooks = (*Metrics)(nil)

// NewMetrics creates the render metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		plots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waterfall",
			Name:      "plots_total",
			Help:      "Charts plotted, by outcome.",
		}, []string{"outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waterfall",
			Name:      "exports_total",
			Help:      "Figures exported, by format and outcome.",
		}, []string{"format", "outcome"}),
		exportBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waterfall",
			Name:      "export_bytes_total",
			Help:      "Bytes of exported figures, by format.",
		}, []string{"format"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "waterfall",
			Name:      "stage_duration_seconds",
			Help:      "Time spent plotting and exporting.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
	}
	reg.MustRegister(m.plots, m.exports, m.exportBytes, m.duration)
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnPlot implements observability.RenderHooks.
func (m *Metrics) OnPlot(_ context.Context, _ int, d time.Duration, err error) {
	m.plots.WithLabelValues(outcome(err)).Inc()
	m.duration.WithLabelValues("plot").Observe(d.Seconds())
}

// OnExport implements observability.RenderHooks.
func (m *Metrics) OnExport(_ context.Context, format string, size int, d time.Duration, err error) {
	m.exports.WithLabelValues(format, outcome(err)).Inc()
	if err == nil {
		m.exportBytes.WithLabelValues(format).Add(float64(size))
	}
	m.duration.WithLabelValues("export_" + format).Observe(d.Seconds())
}
