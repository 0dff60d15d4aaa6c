// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package supervisor builds the suture supervision tree that keeps
// the kiosk's long-running services alive.
//
// The tree has three child layers under one root:
//
//	kiosk
//	├── sync-layer     (connectivity watcher, auto sync, analytics)
//	├── display-layer  (idle monitor, performance monitor)
//	└── api-layer      (HTTP surfaces)
//
// The layering isolates failures: a crashing sync loop restarts with
// backoff instead of taking the display or the HTTP server down with
// it. Supervision events are logged through the sutureslog hook so
// restarts show up in the same structured stream as everything else.
package supervisor
