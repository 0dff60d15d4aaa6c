// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/models"
)

// statusReport is the agent's local status document, consumed by the
// display shell and by operators over SSH.
type statusReport struct {
	Online       bool         `json:"online"`
	Language     string       `json:"language"`
	Idle         bool         `json:"idle"`
	Countdown    int          `json:"countdown,omitempty"`
	SlideIndex   int          `json:"slideIndex"`
	SlideCount   int          `json:"slideCount"`
	ServiceCount int          `json:"serviceCount"`
	TickerTexts  []string     `json:"tickerTexts"`
	Theme        models.Theme `json:"theme"`
	LastFetch    time.Time    `json:"lastFetch"`
}

// statusHandler builds the agent's local HTTP surface: a status
// document, an input hook for the display shell, and Prometheus
// metrics. It binds to loopback only.
func (a *agent) statusHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz/live", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		report := statusReport{
			Online:       a.engine.Online(),
			Language:     a.ticker.Language(),
			Idle:         a.monitor.IsIdle(),
			SlideIndex:   a.slides.CurrentIndex(),
			SlideCount:   a.slides.Count(),
			ServiceCount: a.service.Count(),
			TickerTexts:  a.ticker.DisplayTexts(),
			Theme:        a.config.Theme(),
			LastFetch:    a.config.LastFetch(),
		}
		if a.monitor.ShowCountdown() {
			report.Countdown = a.monitor.CountdownSeconds()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logging.Error().Err(err).Msg("Failed to encode status report")
		}
	})

	// The display shell posts here on every touch or key press.
	r.Post("/input", func(w http.ResponseWriter, req *http.Request) {
		a.monitor.Input()
		w.WriteHeader(http.StatusNoContent)
	})

	// Slide navigation for display shells that delegate position
	// tracking to the agent.
	r.Post("/slides/next", func(w http.ResponseWriter, req *http.Request) {
		a.slides.Next()
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/slides/previous", func(w http.ResponseWriter, req *http.Request) {
		a.slides.Previous()
		w.WriteHeader(http.StatusNoContent)
	})

	// Ticker language toggle, bound to the language button in the shell.
	r.Post("/language/toggle", func(w http.ResponseWriter, req *http.Request) {
		a.ticker.ToggleLanguage()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
