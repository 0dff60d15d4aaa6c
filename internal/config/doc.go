// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package config loads layered configuration for the kiosk server and
// the display agent.
//
// Layers are merged with koanf, each overriding the previous one:
//
//  1. Built-in defaults (structs provider)
//  2. Optional YAML file, found via KIOSK_CONFIG or the default paths
//  3. Environment variables (env provider)
//
// Environment variables map to config keys through an explicit table
// rather than a naming convention, so the operator-facing names stay
// short: HTTP_PORT, KIOSK_DATA_DIR, SYNC_INTERVAL, LOG_LEVEL and so
// on. Unknown variables are ignored.
//
// Load unmarshals the merged tree into Config and runs Validate,
// which checks cross-field constraints such as the idle countdown
// window being shorter than the idle budget. A bad port or an empty
// data directory fails at startup instead of mid-request.
package config
