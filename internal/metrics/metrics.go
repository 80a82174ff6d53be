// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// Session Metrics
	SessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tigana_sessions_open",
			Help: "Number of sessions held by the session manager",
		},
	)

	CartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigana_cart_mutations_total",
			Help: "Total number of cart actions applied",
		},
		[]string{"action"},
	)

	TrackerEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigana_tracker_events_total",
			Help: "Total number of behavior events recorded",
		},
		[]string{"event"},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tigana_recommend_duration_seconds",
			Help:    "Time to compute a recommendation list in seconds",
			Buckets: []float64{.00005, .0001, .0005, .001, .005, .01, .05},
		},
		[]string{"surface"},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tigana_recommend_results",
			Help:    "Number of items returned per recommendation list",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 8},
		},
		[]string{"surface"},
	)

	// Persistence Metrics
	StorageWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigana_storage_writes_total",
			Help: "Total number of session record writes",
		},
		[]string{"record", "result"}, // result: "success", "failure"
	)

	HydrationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigana_hydration_fallbacks_total",
			Help: "Total number of stored records replaced by defaults at session open",
		},
		[]string{"record", "reason"}, // reason: "read", "schema", "decode"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Chat and Promotion Metrics
	FAQResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigana_faq_responses_total",
			Help: "Total number of chat answers by routing rule",
		},
		[]string{"route"},
	)

	PromoApplications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigana_promo_applications_total",
			Help: "Total number of promo code checks by result",
		},
		[]string{"result"}, // result: "applied", "unknown", "not_eligible", "expired", "error"
	)

	// Event Stream Metrics
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigana_events_consumed_total",
			Help: "Total number of behavior events seen by the consumer",
		},
		[]string{"kind"},
	)

	EventsPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tigana_events_publish_failures_total",
			Help: "Total number of behavior events that failed to publish",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the latency and size of one list.
func RecordRecommendation(surface string, duration time.Duration, results int) {
	RecommendDuration.WithLabelValues(surface).Observe(duration.Seconds())
	RecommendResults.WithLabelValues(surface).Observe(float64(results))
}

// RecordStorageWrite counts a record write by outcome.
func RecordStorageWrite(record string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	StorageWrites.WithLabelValues(record, result).Inc()
}

// RecordHydrationFallback counts a stored record discarded at session open.
func RecordHydrationFallback(record, reason string) {
	HydrationFallbacks.WithLabelValues(record, reason).Inc()
}

// RecordBreakerTransition updates breaker gauges. State codes follow
// gobreaker: 0=closed, 1=half-open, 2=open.
func RecordBreakerTransition(name, from, to string, toCode int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(toCode))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}
