// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Package metrics provides Prometheus instrumentation for:
//   - API endpoint latency and throughput
//   - Event store round trips
//   - Reverse-geocode provider calls, cache efficiency, circuit breaker
//   - Tap ingestion outcomes
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate-limited requests",
		},
		[]string{"endpoint"},
	)

	// Tap Ingestion Metrics
	TapsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taps_recorded_total",
			Help: "Total number of tap events recorded",
		},
		[]string{"geocoded"}, // "true", "false", "skipped"
	)

	// Event Store Metrics (PostgREST)
	StoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_request_duration_seconds",
			Help:    "Duration of event store round trips in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	StoreRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_request_errors_total",
			Help: "Total number of event store errors",
		},
		[]string{"operation", "table", "status"},
	)

	// Geocode Metrics
	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Total number of reverse-geocode provider calls",
		},
		[]string{"outcome"}, // "success", "failure", "rejected"
	)

	GeocodeRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geocode_request_duration_seconds",
			Help:    "Duration of reverse-geocode provider calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	GeocodeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_cache_hits_total",
			Help: "Total number of geocode cache hits",
		},
	)

	GeocodeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_cache_misses_total",
			Help: "Total number of geocode cache misses",
		},
	)

	GeocodeCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geocode_cache_entries",
			Help: "Current number of cached geocode results",
		},
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
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStoreRequest records a completed event store round trip.
func RecordStoreRequest(operation, table string, duration time.Duration, err error, status int) {
	StoreRequestDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		StoreRequestErrors.WithLabelValues(operation, table, strconv.Itoa(status)).Inc()
	}
}
