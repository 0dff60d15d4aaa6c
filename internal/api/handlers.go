// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"

	"github.com/sigma-desa/kiosk/internal/docstore"
	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
	"github.com/sigma-desa/kiosk/internal/models"
)

// maxTrackBodyBytes bounds analytics POST bodies. Events are tiny, a
// larger body is either a bug or abuse.
const maxTrackBodyBytes = 16 * 1024

// Handler serves the kiosk document endpoints.
type Handler struct {
	store    *docstore.Store
	validate *validator.Validate
}

// NewHandler creates a Handler backed by the given document store.
func NewHandler(store *docstore.Store) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Config serves GET /api/kiosk/config.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Config()
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

// Slides serves GET /api/kiosk/slides.
func (h *Handler) Slides(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Slides()
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

// Services serves GET /api/kiosk/services.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Services()
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

// RunningText serves GET /api/kiosk/running-text.
func (h *Handler) RunningText(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.RunningText()
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

// trackRequest is the analytics POST body. Timestamp is the client
// clock in unix milliseconds.
type trackRequest struct {
	Event     string         `json:"event" validate:"required,max=128"`
	Data      map[string]any `json:"data"`
	Timestamp int64          `json:"timestamp" validate:"required"`
}

// trackResponse mirrors the legacy tracking endpoint contract.
type trackResponse struct {
	Success bool `json:"success"`
}

// TrackAnalytics serves POST /api/kiosk/analytics/track. The validated
// event is appended to a bounded log with its client timestamp.
func (h *Handler) TrackAnalytics(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTrackBodyBytes))
	if err != nil {
		metrics.AnalyticsEvents.WithLabelValues("rejected").Inc()
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "failed to read request body")
		return
	}

	var req trackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		metrics.AnalyticsEvents.WithLabelValues("rejected").Inc()
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "request body must be valid JSON")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		metrics.AnalyticsEvents.WithLabelValues("rejected").Inc()

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, r, http.StatusUnprocessableEntity, ErrCodeValidationFailed,
				"invalid field: "+verrs[0].Field())
			return
		}
		writeError(w, r, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "validation failed")
		return
	}

	event := models.AnalyticsEvent{
		Event:     req.Event,
		Data:      req.Data,
		Timestamp: req.Timestamp,
	}

	if err := h.store.AppendAnalytics(event); err != nil {
		metrics.AnalyticsEvents.WithLabelValues("error").Inc()
		writeInternalError(w, r, err)
		return
	}

	metrics.AnalyticsEvents.WithLabelValues("accepted").Inc()
	logging.Ctx(r.Context()).Debug().
		Str("event", req.Event).
		Msg("Analytics event recorded")

	writeJSON(w, r, http.StatusOK, trackResponse{Success: true})
}

// healthResponse is the body for health endpoints.
type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// HealthLive serves GET /healthz/live. It reports process liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthReady serves GET /healthz/ready. The server is ready when the
// document store can produce the kiosk configuration.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Config(); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{
			Status: "unavailable",
			Time:   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
