// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package stores holds the display agent's in-memory document state.
//
// One store per document (config, slides, services, running text),
// each built on a shared base that tracks loading and error state:
//
//	Fetch -> beginFetch (loading, previous error cleared)
//	      -> sync engine fetch
//	      -> endFetch (result recorded, subscribers notified)
//
// A failed refresh keeps the last good data; the error is exposed
// alongside it so the display can show stale content with an offline
// badge rather than a blank screen. Subscribers receive a
// notification on every state change and read the store afterwards,
// so slow consumers coalesce updates instead of queueing them.
//
// The package also houses the analytics Tracker, which queues usage
// events and delivers them to the content server with its own
// rate limit, dropping events when the queue is full rather than
// blocking the display.
package stores
