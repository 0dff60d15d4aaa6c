// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sigma-desa/kiosk/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler form so it can be used with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers and middleware into the server's route table.
type Router struct {
	handler *Handler
	chimw   *ChiMiddleware
}

// NewRouter creates a Router with the given handler and middleware config.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler: handler,
		chimw:   NewChiMiddleware(mwConfig),
	}
}

// Setup builds the full route table.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chimw.CORS())
	r.Use(chiMiddleware(middleware.SecurityHeaders))

	// Health endpoints get permissive rate limiting so probes can poll.
	r.Route("/healthz", func(r chi.Router) {
		r.Use(router.chimw.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Kiosk document endpoints.
	r.Route("/api/kiosk", func(r chi.Router) {
		r.Use(router.chimw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/config", router.handler.Config)
		r.Get("/slides", router.handler.Slides)
		r.Get("/services", router.handler.Services)
		r.Get("/running-text", router.handler.RunningText)
		r.Post("/analytics/track", router.handler.TrackAnalytics)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	return r
}
