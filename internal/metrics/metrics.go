// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kiosk_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kiosk_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Offline sync metrics. Outcome is success, fallback or miss.
	SyncOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_sync_outcomes_total",
			Help: "Total number of document sync attempts by outcome",
		},
		[]string{"document", "outcome"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kiosk_sync_duration_seconds",
			Help:    "Duration of document sync attempts in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	AutoSyncTicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_autosync_ticks_total",
			Help: "Total auto-sync timer ticks by disposition (run, skipped_offline, failed)",
		},
		[]string{"disposition"},
	)

	// Cache store metrics. Status is ok or error.
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_cache_operations_total",
			Help: "Total cache store operations by status",
		},
		[]string{"operation", "status"},
	)

	// Circuit breaker metrics (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kiosk_circuit_breaker_state",
			Help: "Current circuit breaker state",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_circuit_breaker_requests_total",
			Help: "Total requests through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	// Idle/attract machine metrics
	IdleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_idle_transitions_total",
			Help: "Total idle state machine transitions by target state",
		},
		[]string{"state"},
	)

	// Video playback watchdog metrics
	VideoPlayAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_video_play_attempts_total",
			Help: "Total video play attempts by result (ok, retry, exhausted)",
		},
		[]string{"result"},
	)

	// Analytics tracker metrics
	AnalyticsEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_analytics_events_total",
			Help: "Total analytics events by delivery status (sent, failed, throttled)",
		},
		[]string{"status"},
	)

	// Performance monitor metrics
	ProcessMemoryBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kiosk_process_memory_bytes",
			Help: "Resident memory of the kiosk process as last sampled",
		},
	)
)

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSyncOutcome records one sync attempt for a document.
func RecordSyncOutcome(document, outcome string, duration time.Duration) {
	SyncOutcomes.WithLabelValues(document, outcome).Inc()
	SyncDuration.Observe(duration.Seconds())
}
