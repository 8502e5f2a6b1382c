package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for jadoo_chat_requests_total.
const (
	OutcomeSuccess       = "success"
	OutcomeDemo          = "demo"
	OutcomeBadRequest    = "bad_request"
	OutcomeConfigError   = "config_error"
	OutcomeAuthError     = "auth_error"
	OutcomeProviderError = "provider_error"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewMetrics registers the chat metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jadoo_chat_requests_total",
				Help: "Chat requests by outcome",
			},
			[]string{"outcome"},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jadoo_chat_request_duration_seconds",
				Help:    "Chat request duration in seconds, provider call included",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
	}
}

func (m *Metrics) Observe(outcome string, d time.Duration) {
	m.Requests.WithLabelValues(outcome).Inc()
	m.Duration.Observe(d.Seconds())
}
