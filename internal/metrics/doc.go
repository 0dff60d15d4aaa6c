// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package metrics provides Prometheus instrumentation for the kiosk.
//
// All collectors are registered once via promauto against the default
// registry and exposed on /metrics by both binaries:
//
//	kiosk_api_requests_total            - API traffic by path and status
//	kiosk_api_request_duration_seconds  - endpoint latency histogram
//	kiosk_sync_outcomes_total           - sync results by document and source
//	kiosk_cache_operations_total        - offline cache hits, misses, writes
//	kiosk_circuit_breaker_state         - breaker state gauge
//	kiosk_idle_transitions_total        - attract-loop entries and exits
//	kiosk_video_play_attempts_total     - watchdog restarts of stuck video
//	kiosk_process_memory_bytes          - display process RSS sample
//
// Helper functions wrap the collectors so call sites never touch label
// values directly; a typo in a label becomes a compile error instead
// of a new timeseries.
package metrics
