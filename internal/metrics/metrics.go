// Package metrics defines the Prometheus instruments for the Globemarks API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every instrument the server records.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

// New registers all instruments with reg and returns them.
// Pass prometheus.NewRegistry() in tests to avoid global-registry collisions.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "globemarks_http_requests_total",
			Help: "Total number of HTTP requests served, by method, route, and status.",
		}, []string{"method", "route", "status"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "globemarks_http_request_duration_seconds",
			Help:    "Duration of HTTP requests, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}
