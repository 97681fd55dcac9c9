package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	LookupsTotal            *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		UpstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musicapi_upstream_requests_total",
				Help: "Total number of requests sent to the Spotify Web API",
			},
			[]string{"endpoint", "status"},
		),
		UpstreamRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "musicapi_upstream_request_duration_seconds",
				Help:    "Time spent waiting for the Spotify Web API",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musicapi_lookups_total",
				Help: "Total number of lookups served",
			},
			[]string{"operation", "result"},
		),
	}

	metrics.registry.MustRegister(
		metrics.UpstreamRequestsTotal,
		metrics.UpstreamRequestDuration,
		metrics.LookupsTotal,
	)

	return metrics
}

// ObserveRequest records one upstream GET.
func (m *Metrics) ObserveRequest(endpoint, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordLookup(operation, result string) {
	m.LookupsTotal.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
