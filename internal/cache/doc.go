// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package cache provides the display agent's durable document cache,
// backed by BadgerDB.
//
// Every synced document is stored alongside the time it was fetched,
// so the kiosk can serve stale content and report its age while the
// content server is unreachable:
//
//	Sync Engine -> Store.Put(doc, body)      on successful fetch
//	Sync Engine -> Store.Get(doc)            on fetch failure
//	Status API  -> Store.Age(doc)            for staleness reporting
//
// Keys are the document names the sync engine uses, namespaced under
// a "kioskdoc:" prefix; values are Entry records holding the raw JSON
// body as received from the server plus the fetch time in Unix
// milliseconds. Entries never expire. A kiosk that has been offline
// for a week still shows last week's announcements rather than an
// error screen.
//
// The store owns a single Badger instance and must be closed on
// shutdown so the value log is synced. All methods are safe for
// concurrent use.
package cache
