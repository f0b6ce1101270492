package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_login_attempts_total",
			Help: "Authorization URLs requested, by outcome",
		},
		[]string{"outcome"},
	)

	CallbackAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_callback_attempts_total",
			Help: "OAuth callbacks handled, by outcome",
		},
		[]string{"outcome"},
	)

	TokenExchangeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_token_exchange_duration_seconds",
			Help:    "Time to redeem an authorization code and verify the id_token",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)
