package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ProviderErrors  *prometheus.CounterVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	CacheEntries    prometheus.Gauge
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freight_requests_total",
				Help: "Total number of requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "freight_request_duration_seconds",
				Help:    "Request duration in seconds by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ProviderErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freight_provider_errors_total",
				Help: "Total provider API errors by provider and error type",
			},
			[]string{"provider", "error_type"},
		),
		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "freight_quote_cache_hits_total",
				Help: "Total quote cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "freight_quote_cache_misses_total",
				Help: "Total quote cache misses",
			},
		),
		CacheEntries: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "freight_quote_cache_entries",
				Help: "Current number of quote cache entries",
			},
		),
	}
}

// RecordRequest records a request metric.
func (m *Metrics) RecordRequest(operation, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(duration)
}

// RecordProviderError records a provider error metric.
func (m *Metrics) RecordProviderError(provider, errorType string) {
	m.ProviderErrors.WithLabelValues(provider, errorType).Inc()
}
