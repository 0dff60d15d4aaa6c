// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package logging provides centralized zerolog-based logging for the
// kiosk server and the display agent.
//
// A single global logger is configured once at startup via Init and
// consumed through package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("document", "slides").Msg("Synced from API")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Falling back to cache")
//
// JSON output is the production default; console output is available
// for development on an attached terminal. Always terminate log chains
// with .Msg() or .Send(), and prefer structured fields over format
// strings.
//
// # Component Loggers
//
// Long-running components derive a logger with a fixed component
// field:
//
//	log := logging.With().Str("component", "sync").Logger()
//	log.Info().Msg("Auto-sync started")
//
// # Supervisor Integration
//
// NewSlogLogger adapts the global logger to log/slog for suture's
// EventHook, so supervision events land in the same stream as
// everything else.
//
// All exported functions are safe for concurrent use.
package logging
