package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "docdesk_client"

// clientMetrics lives on a registry owned by one HTTPClient, so several
// clients in one process (tests, one-shot commands) never collide.
type clientMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newClientMetrics() *clientMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &clientMetrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "API requests by method and response code.",
			},
			[]string{"method", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "API request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

func (m *clientMetrics) instrument(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(m.requests,
		promhttp.InstrumentRoundTripperDuration(m.duration, next))
}
