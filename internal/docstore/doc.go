// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package docstore persists kiosk configuration documents as flat JSON
// files under a data directory.
//
// One file per document:
//
//	kiosk-config.json        - appearance and behavior settings
//	kiosk-slides.json        - slideshow rotation
//	kiosk-services.json      - services menu
//	kiosk-running-text.json  - ticker messages per language
//	kiosk-analytics.json     - bounded usage event log
//
// Reads fall back to built-in defaults and persist them, so a fresh
// deployment serves sensible content before an operator has edited
// anything. A document that fails to decode is treated the same way:
// the default is restored and written back, and the failure is logged,
// so a corrupt file degrades to stock content rather than a 500.
//
// Writes go through a temp file and rename so a crash mid-write never
// leaves a torn document. All methods are safe for concurrent use; a
// single mutex serializes file access, which is plenty for a
// village-office deployment.
package docstore
