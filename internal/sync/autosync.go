// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package sync

import (
	"context"
	"time"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
)

// minAutoSyncInterval guards against configuration that would turn the
// kiosk into a load generator.
const minAutoSyncInterval = 10 * time.Second

// AutoSync periodically refreshes every kiosk document. A failing tick
// is contained: it is logged and counted, and the next tick runs on
// schedule.
type AutoSync struct {
	engine   *Engine
	interval time.Duration

	// Refresh, when set, replaces the default whole-engine sync. The
	// display agent points it at its stores so one tick refreshes both
	// the cache and the in-memory state.
	Refresh func(ctx context.Context) error

	startStop
}

// NewAutoSync creates the periodic refresher.
func NewAutoSync(engine *Engine, interval time.Duration) *AutoSync {
	if interval < minAutoSyncInterval {
		interval = minAutoSyncInterval
	}
	return &AutoSync{engine: engine, interval: interval}
}

// Serve syncs immediately, then on every tick until ctx is canceled.
// Implements suture.Service.
func (a *AutoSync) Serve(ctx context.Context) error {
	logging.Info().Dur("interval", a.interval).Msg("Auto sync started")

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Auto sync stopped")
			return ctx.Err()
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

// Start launches auto sync in the background, outside a supervision tree.
func (a *AutoSync) Start() {
	a.start(a.Serve)
}

// Stop cancels a background loop started with Start and waits for the
// in-flight tick to finish.
func (a *AutoSync) Stop() {
	a.stop()
}

func (a *AutoSync) tick(ctx context.Context) {
	if !a.engine.Online() {
		// Nothing to refresh while offline; stores keep serving the
		// cache they already loaded.
		metrics.AutoSyncTicks.WithLabelValues("skipped_offline").Inc()
		return
	}

	refresh := a.Refresh
	if refresh == nil {
		refresh = a.engine.SyncAll
	}

	if err := refresh(ctx); err != nil {
		metrics.AutoSyncTicks.WithLabelValues("error").Inc()
		logging.Warn().Err(err).Msg("Auto sync tick completed with errors")
	} else {
		metrics.AutoSyncTicks.WithLabelValues("ok").Inc()
	}
}
