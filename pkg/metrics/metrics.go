// Package metrics provides Prometheus metrics for the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Journey query outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeEmpty          = "empty"
	OutcomeInvalidStation = "invalid_station"
	OutcomeUpstreamError  = "upstream_error"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Domain metrics
	JourneyQueriesTotal *prometheus.CounterVec
	IntentsTotal        *prometheus.CounterVec
	TelegramUpdates     prometheus.Counter
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tfnsw_assistant_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tfnsw_assistant_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	journeyQueriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tfnsw_assistant_journey_queries_total",
			Help: "Journey queries by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	intentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tfnsw_assistant_intents_total",
			Help: "Intent extractions by result",
		},
		[]string{"result"},
	)

	telegramUpdates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tfnsw_assistant_telegram_updates_total",
		Help: "Telegram webhook updates received",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		journeyQueriesTotal,
		intentsTotal,
		telegramUpdates,
	)

	return &Metrics{
		Registry:            registry,
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		JourneyQueriesTotal: journeyQueriesTotal,
		IntentsTotal:        intentsTotal,
		TelegramUpdates:     telegramUpdates,
	}
}
