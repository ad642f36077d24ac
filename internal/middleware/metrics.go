package middleware

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names exposed by the API server.
const (
	MetricHTTPRequestDuration   = "http_request_duration_seconds"
	MetricHTTPRequestsTotal     = "http_requests_total"
	MetricHTTPRequestsInFlight  = "http_requests_in_flight"
	MetricRecommendationResults = "recommendation_results_count"
)

// Metrics holds the Prometheus collectors for the API server. Collectors are
// created by NewMetrics and attached to a registry with Register, so tests
// can use isolated registries.
type Metrics struct {
	requestDuration       *prometheus.HistogramVec
	requestsTotal         *prometheus.CounterVec
	requestsInFlight      prometheus.Gauge
	recommendationResults prometheus.Histogram
}

// NewMetrics creates the server collectors without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricHTTPRequestsInFlight,
				Help: "Number of HTTP requests currently being served.",
			},
		),
		recommendationResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricRecommendationResults,
				Help:    "Number of countries returned per recommendation request.",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
	}
}

// Register attaches all collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.requestDuration,
		m.requestsTotal,
		m.requestsInFlight,
		m.recommendationResults,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, seconds float64) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.requestDuration.With(labels).Observe(seconds)
	m.requestsTotal.With(labels).Inc()
}

// ObserveRecommendation records how many countries a recommendation
// request returned after filtering and ranking.
func (m *Metrics) ObserveRecommendation(results int) {
	m.recommendationResults.Observe(float64(results))
}
