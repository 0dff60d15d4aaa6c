// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package middleware provides HTTP middleware for the kiosk content
// server: request IDs, Prometheus instrumentation and security
// headers.
//
// Everything here wraps http.HandlerFunc and is mounted by the api
// package's router. The Prometheus wrapper records request counts, an
// in-flight gauge and a latency histogram labeled by method, path and
// status; the kiosk API has a fixed handful of routes, so raw paths
// are safe as label values.
package middleware
