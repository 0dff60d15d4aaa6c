// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package api provides the HTTP surface of the kiosk content server.
//
// Document endpoints return the raw JSON document body so display
// agents can cache responses byte for byte:
//
//	GET  /api/kiosk/config           - appearance and behavior settings
//	GET  /api/kiosk/slides           - slideshow rotation
//	GET  /api/kiosk/services         - services menu
//	GET  /api/kiosk/running-text     - ticker messages per language
//	POST /api/kiosk/analytics/track  - analytics events from display agents
//	GET  /healthz/live, /healthz/ready - liveness and readiness
//
// The track endpoint validates its payload with
// go-playground/validator before handing it to the document store.
// Validation failures return 422 with a field error; malformed JSON
// returns 400.
//
// The router is chi with request IDs, CORS, security headers, per-IP
// rate limiting and Prometheus instrumentation. Health endpoints get
// a permissive rate limit of their own so poll loops never starve.
// Handlers hold only a docstore.Store reference and stay free of
// transport concerns beyond status codes.
package api
