package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the analyzer's collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	StageDuration    *prometheus.HistogramVec
	DiagnosticsTotal *prometheus.CounterVec
	RunsTotal        *prometheus.CounterVec
	ClassesTotal     prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coolsem_stage_seconds",
			Help:    "Time spent in each semantic analysis stage.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"stage"}),

		DiagnosticsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coolsem_diagnostics_total",
			Help: "Semantic diagnostics reported, by category.",
		}, []string{"category"}),

		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coolsem_runs_total",
			Help: "Analyzed compilation units, by outcome.",
		}, []string{"result"}),

		ClassesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "coolsem_classes_total",
			Help: "Class declarations analyzed.",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) CountDiagnostic(category string) {
	if m == nil {
		return
	}
	m.DiagnosticsTotal.WithLabelValues(category).Inc()
}

func (m *Metrics) CountRun(ok bool, classes int) {
	if m == nil {
		return
	}
	result := "failed"
	if ok {
		result = "ok"
	}
	m.RunsTotal.WithLabelValues(result).Inc()
	m.ClassesTotal.Add(float64(classes))
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
