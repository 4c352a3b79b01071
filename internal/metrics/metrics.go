package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks generator and store calls. Each instance owns its registry
// so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	generatorCalls   *prometheus.CounterVec
	generatorLatency *prometheus.HistogramVec
	storeCalls       *prometheus.CounterVec
	exports          *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generatorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docgen",
			Name:      "generator_calls_total",
			Help:      "Text generator calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		generatorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "docgen",
			Name:      "generator_call_duration_seconds",
			Help:      "Latency of text generator calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"operation"}),
		storeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docgen",
			Name:      "store_calls_total",
			Help:      "Content store calls by method and outcome.",
		}, []string{"method", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docgen",
			Name:      "exports_total",
			Help:      "Rendered exports by format.",
		}, []string{"format"}),
	}
	m.registry.MustRegister(m.generatorCalls, m.generatorLatency, m.storeCalls, m.exports)
	return m
}

func (m *Metrics) ObserveGeneration(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.generatorCalls.WithLabelValues(operation, outcome(err)).Inc()
	m.generatorLatency.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) ObserveStore(method string, err error) {
	if m == nil {
		return
	}
	m.storeCalls.WithLabelValues(method, outcome(err)).Inc()
}

func (m *Metrics) ObserveExport(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
