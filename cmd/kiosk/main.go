// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package main is the kiosk display agent.
//
// The agent runs on the kiosk device itself. It keeps a durable local
// copy of the content server's documents (theme, slideshow, service
// directory, ticker messages) and serves them to the display layer
// even when the network is down: every fetch is network-first with
// cache fallback, behind a circuit breaker.
//
// Long-running work is supervised:
//   - connectivity watcher: probes the server and flips the agent
//     between online and offline
//   - auto sync: refreshes every document on an interval
//   - analytics delivery: rate-limited, best-effort event upload
//   - performance monitor: watches the agent's memory usage
//   - status server: local /status and /metrics endpoints
//
// An idle monitor returns the display to the attract loop after a
// period without visitor input.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sigma-desa/kiosk/internal/cache"
	"github.com/sigma-desa/kiosk/internal/config"
	"github.com/sigma-desa/kiosk/internal/idle"
	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/media"
	"github.com/sigma-desa/kiosk/internal/stores"
	"github.com/sigma-desa/kiosk/internal/supervisor"
	"github.com/sigma-desa/kiosk/internal/supervisor/services"
	"github.com/sigma-desa/kiosk/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("server", cfg.Kiosk.APIBaseURL).
		Str("cache_dir", cfg.Kiosk.CacheDir).
		Str("language", cfg.Kiosk.Language).
		Msg("Starting kiosk display agent")

	cacheStore, err := cache.Open(cfg.Kiosk.CacheDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open document cache")
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing document cache")
		}
	}()

	client, err := sync.NewClient(sync.ClientConfig{
		BaseURL: cfg.Kiosk.APIBaseURL,
		Timeout: cfg.Sync.RequestTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create server client")
	}
	breaker := sync.NewCircuitBreakerClient(client)
	engine := sync.NewEngine(breaker, cacheStore)

	agent := newAgent(cfg, engine, client)

	// Initial load. Errors are logged and tolerated: a kiosk with a
	// warm cache runs fine offline, and a cold kiosk retries on the
	// next sync tick.
	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	if err := agent.refresh(startCtx); err != nil {
		logging.Warn().Err(err).Msg("Initial content load incomplete")
	}
	cancelStart()

	monitor, err := idle.NewMonitor(idle.Config{
		Budget:          agent.idleBudget(),
		CountdownWindow: cfg.Idle.CountdownWindow,
		OnIdle:          agent.onIdle,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid idle configuration")
	}
	monitor.Start()
	defer monitor.Stop()
	agent.monitor = monitor

	perfMonitor, err := media.NewPerformanceMonitor(cfg.Monitor.SampleInterval, cfg.Monitor.MemoryWarnMB)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create performance monitor")
	}

	watcher := sync.NewConnectivityWatcher(breaker, engine, cfg.Sync.ProbeInterval)
	autoSync := sync.NewAutoSync(engine, cfg.Sync.Interval)
	autoSync.Refresh = agent.refresh

	statusServer := &http.Server{
		Addr:              cfg.Kiosk.StatusAddr,
		Handler:           agent.statusHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	tree := supervisor.NewTree("kiosk-agent", logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSyncService(services.Named("connectivity-watcher", watcher))
	tree.AddSyncService(services.Named("auto-sync", autoSync))
	tree.AddSyncService(services.Named("analytics-tracker", agent.tracker))
	tree.AddDisplayService(services.Named("performance-monitor", perfMonitor))
	tree.AddAPIService(services.NewHTTPServerService(statusServer, 5*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Supervisor exited")
		os.Exit(1)
	}

	logging.Info().Msg("Shutdown complete")
}

// agent binds the stores, tracker and idle monitoring together.
type agent struct {
	cfg     *config.Config
	engine  *sync.Engine
	config  *stores.ConfigStore
	slides  *stores.SlidesStore
	service *stores.ServicesStore
	ticker  *stores.RunningTextStore
	tracker *stores.Tracker
	monitor *idle.Monitor
}

func newAgent(cfg *config.Config, engine *sync.Engine, poster stores.EventPoster) *agent {
	return &agent{
		cfg:     cfg,
		engine:  engine,
		config:  stores.NewConfigStore(engine),
		slides:  stores.NewSlidesStore(engine),
		service: stores.NewServicesStore(engine),
		ticker:  stores.NewRunningTextStore(engine, cfg.Kiosk.Language),
		tracker: stores.NewTracker(poster),
	}
}

// refresh refetches every store. Each store keeps its previous data on
// failure; the joined error reports what could not be refreshed.
func (a *agent) refresh(ctx context.Context) error {
	return errors.Join(
		a.config.Fetch(ctx),
		a.slides.Fetch(ctx),
		a.service.Fetch(ctx),
		a.ticker.Fetch(ctx),
	)
}

// idleBudget prefers the server-provided idle policy, falling back to
// the local configuration when the policy is disabled, absent, or too
// short to fit the countdown window.
func (a *agent) idleBudget() time.Duration {
	if budget := a.config.IdleTimeout(); budget > a.cfg.Idle.CountdownWindow {
		return budget
	}
	return a.cfg.Idle.Budget
}

// onIdle returns the display to the attract loop.
func (a *agent) onIdle() {
	a.slides.GoToSlide(0)
	a.tracker.Track("idle_reset", nil)
}
