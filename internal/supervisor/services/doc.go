// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package services adapts the kiosk's long-running components to
// suture's Serve(ctx) lifecycle.
//
// HTTPServerService runs an http.Server under supervision, shutting
// it down gracefully when the context is canceled. Named wraps any
// service so supervisor logs identify it by a stable name instead of
// a struct dump.
package services
