// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package main is the kiosk content server.
//
// The server holds the documents a village's public kiosks display:
// theme configuration, the attract-loop slideshow, the service
// directory, and ticker messages. Documents live as flat JSON files in
// a data directory, so operators edit them with any text editor and
// the next kiosk sync picks the change up. The server also collects
// best-effort usage analytics posted by the kiosks.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (KIOSK_ prefixed, e.g. KIOSK_HTTP_PORT)
//   - Config file (kiosk.yaml, or KIOSK_CONFIG_PATH)
//   - Built-in defaults
//
// # Usage
//
//	kiosk-server            # serve on the configured address
//	kiosk-server -seed      # write default documents and exit
//
// The server handles graceful shutdown on SIGINT and SIGTERM, waiting
// up to 10 seconds for in-flight requests.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sigma-desa/kiosk/internal/api"
	"github.com/sigma-desa/kiosk/internal/config"
	"github.com/sigma-desa/kiosk/internal/docstore"
	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/supervisor"
	"github.com/sigma-desa/kiosk/internal/supervisor/services"
)

func main() {
	seed := flag.Bool("seed", false, "write default documents to the data directory and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	store, err := docstore.New(cfg.Server.DataDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open document store")
	}

	if *seed {
		if err := store.Seed(); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed documents")
		}
		logging.Info().Str("dir", store.Dir()).Msg("Default documents written")
		return
	}

	logging.Info().
		Str("data_dir", cfg.Server.DataDir).
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting kiosk content server")

	router := api.NewRouter(api.NewHandler(store), &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree := supervisor.NewTree("kiosk-server", logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("Serving")
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Supervisor exited")
		os.Exit(1)
	}

	logging.Info().Msg("Shutdown complete")
}
