// Package metrics provides Prometheus metrics for the event service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	EventsCreated      *prometheus.CounterVec
	EventsDeleted      prometheus.Counter
	ExtractionDuration *prometheus.HistogramVec
	ExtractionFailures *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smtd_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smtd_http_request_duration_seconds",
				Help:    "HTTP request duration by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		EventsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smtd_events_created_total",
				Help: "Total number of events created by category.",
			},
			[]string{"category"},
		),
		EventsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "smtd_events_deleted_total",
				Help: "Total number of events deleted.",
			},
		),
		ExtractionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smtd_extraction_duration_seconds",
				Help:    "Text extraction duration by extractor.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"extractor"},
		),
		ExtractionFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smtd_extraction_failures_total",
				Help: "Extractions that fell back to an empty result, by extractor.",
			},
			[]string{"extractor"},
		),
		registry: reg,
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(m.EventsCreated)
	reg.MustRegister(m.EventsDeleted)
	reg.MustRegister(m.ExtractionDuration)
	reg.MustRegister(m.ExtractionFailures)
	reg.MustRegister(collectors.NewGoCollector())

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest counts a request and records its duration.
func (m *Metrics) RecordRequest(method, route, status string, seconds float64) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordEventCreated increments the created counter for category.
func (m *Metrics) RecordEventCreated(category string) {
	m.EventsCreated.WithLabelValues(category).Inc()
}

// RecordEventDeleted increments the deleted counter.
func (m *Metrics) RecordEventDeleted() {
	m.EventsDeleted.Inc()
}

// ObserveExtraction records an extraction's duration and whether it failed.
func (m *Metrics) ObserveExtraction(extractor string, seconds float64, failed bool) {
	m.ExtractionDuration.WithLabelValues(extractor).Observe(seconds)
	if failed {
		m.ExtractionFailures.WithLabelValues(extractor).Inc()
	}
}
