// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package media keeps the kiosk presentation resilient.
//
// Four concerns live here:
//
//   - LoadTracker records per-asset load outcomes so a slide whose
//     image never arrived is skipped instead of shown blank.
//   - PlaybackWatchdog restarts stuck video playback with bounded
//     retries and re-plays videos the platform paused without a user
//     asking it to.
//   - PrintTrigger opens documents in the display shell's print view
//     and surfaces ErrPrintBlocked when the shell refuses, so the UI
//     can tell the visitor to ask staff for help.
//   - PerformanceMonitor samples the display process's memory and CPU
//     via gopsutil and logs when usage crosses the configured
//     threshold.
//
// None of these components talk to each other; the display wires their
// callbacks. All are safe for concurrent use unless noted otherwise.
package media
