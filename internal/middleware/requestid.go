// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package middleware

import (
	"net/http"

	"github.com/sigma-desa/kiosk/internal/logging"
)

// RequestIDHeader is the header used to propagate request IDs.
const RequestIDHeader = "X-Request-ID"

// RequestID ensures every request carries a request ID. An incoming
// X-Request-ID is honored so kiosks can correlate retries; otherwise a
// new one is generated. The ID is attached to the request context and
// echoed in the response.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		logger := logging.With().Str("request_id", requestID).Logger()
		ctx = logging.ContextWithLogger(ctx, logger)

		w.Header().Set(RequestIDHeader, requestID)

		next(w, r.WithContext(ctx))
	}
}
