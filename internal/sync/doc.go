// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package sync keeps the display agent's document cache aligned with
// the content server.
//
// Fetch path for each document:
//
//	Engine.SyncRaw
//	  |-- online: Client fetch (circuit breaker) --> cache.Put --> fresh body
//	  |-- fetch failed or offline: cache.Get ----------------> stale body
//	  `-- no cache entry either: error
//
// Fetches are network-first with cache fallback, protected by a
// sony/gobreaker circuit breaker so an unreachable server degrades
// the kiosk to cached content instead of hammering the network. The
// breaker trips after consecutive failures and half-opens after its
// cooldown; while open, fetches short-circuit straight to the cache.
//
// AutoSync refreshes the full document set immediately at startup and
// then on a ticker. The ConnectivityWatcher pings the server's health
// endpoint on its own interval and flips the engine's online flag,
// which gates every sync, manual refreshes included; subscribers are
// notified of each transition so the display can show its offline
// badge.
package sync
