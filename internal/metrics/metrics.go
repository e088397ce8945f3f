// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package metrics holds the Prometheus instruments for Tokirank. Collectors
// are registered with the default registry at init and exposed on /metrics.
//
// Covered areas:
//   - scoring: per-algorithm latency, outcome, batch volume, diversity penalties
//   - store: user context query latency and errors
//   - circuit breaker: state, transitions, admitted/rejected requests
//   - API: request count, latency, in-flight requests
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tokirank"

var (
	// Scoring

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Duration of ScoreEvents calls including user context reads",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"algorithm"},
	)

	ScoringRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_requests_total",
			Help:      "Total ScoreEvents calls by outcome",
		},
		[]string{"algorithm", "status"}, // status: "success", "error", "empty"
	)

	EventsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_scored_total",
			Help:      "Total candidate events scored",
		},
		[]string{"algorithm"},
	)

	DiversityPenalties = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diversity_penalties_total",
			Help:      "Events whose score was reduced by the category diversity pass",
		},
	)

	StrategyConstructions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_constructions_total",
			Help:      "Strategy instances built by the algorithm registry",
		},
		[]string{"algorithm"},
	)

	// Store

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of user context queries",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "User context queries that returned an error",
		},
		[]string{"operation"},
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "Requests through the circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_transitions_total",
			Help:      "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "In-flight HTTP requests",
		},
	)

	StoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_up",
			Help:      "1 if the last store health probe succeeded",
		},
	)
)

// RecordScoring records one ScoreEvents call. An empty batch is counted
// separately so short-circuits don't skew latency.
func RecordScoring(algorithm string, events int, duration time.Duration, err error) {
	switch {
	case err != nil:
		ScoringRequests.WithLabelValues(algorithm, "error").Inc()
	case events == 0:
		ScoringRequests.WithLabelValues(algorithm, "empty").Inc()
		return
	default:
		ScoringRequests.WithLabelValues(algorithm, "success").Inc()
		EventsScored.WithLabelValues(algorithm).Add(float64(events))
	}
	ScoringDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordDiversityPenalties adds n penalized events.
func RecordDiversityPenalties(n int) {
	if n > 0 {
		DiversityPenalties.Add(float64(n))
	}
}

// RecordStrategyConstruction counts a registry cache miss.
func RecordStrategyConstruction(algorithm string) {
	StrategyConstructions.WithLabelValues(algorithm).Inc()
}

// RecordDBQuery records a user context query.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetCircuitBreakerState publishes the numeric breaker state.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerTransition counts a state change.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordCircuitBreakerRequest counts a request outcome.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordAPIRequest records an HTTP request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetStoreUp publishes the result of the last store probe.
func SetStoreUp(up bool) {
	if up {
		StoreUp.Set(1)
		return
	}
	StoreUp.Set(0)
}
