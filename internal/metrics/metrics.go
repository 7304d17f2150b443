// Package metrics defines the Prometheus instruments of the API server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	// Requests counts API requests by endpoint and status class.
	Requests *prometheus.CounterVec
	// CalculationErrors counts rejected or failed calculations.
	CalculationErrors *prometheus.CounterVec
	// Duration observes request handling time in seconds.
	Duration *prometheus.HistogramVec
	// CacheLookups counts response cache hits and misses.
	CacheLookups *prometheus.CounterVec
}

// New registers a fresh set of collectors on their own registry, so several
// servers (or tests) can coexist in one process.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realestate_calc_requests_total",
				Help: "API requests by endpoint and status.",
			},
			[]string{"endpoint", "status"},
		),
		CalculationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realestate_calc_calculation_errors_total",
				Help: "Calculations rejected or failed, by endpoint and error type.",
			},
			[]string{"endpoint", "error_type"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "realestate_calc_request_duration_seconds",
				Help:    "Time spent handling API requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realestate_calc_cache_lookups_total",
				Help: "Response cache lookups by result.",
			},
			[]string{"endpoint", "result"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
