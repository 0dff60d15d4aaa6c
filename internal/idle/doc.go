// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package idle tracks visitor inactivity and drives the kiosk back to
// its attract loop.
//
// The state machine:
//
//	active --(no input for budget-window)--> countdown
//	countdown --(window elapses)-----------> idle (attract loop)
//	countdown --(any input)----------------> active
//	idle --(any input)---------------------> active
//
// A single goroutine owns the timers; input arrives over a channel so
// reporting activity never races the countdown. The OnIdle callback
// fires exactly once per idle episode from the monitor goroutine and
// must not block; the display polls ShowCountdown and CountdownSeconds
// to render the countdown overlay.
package idle
