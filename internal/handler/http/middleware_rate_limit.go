// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-rag-auth/internal/app"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/utils"
	"github.com/MKhiriev/go-rag-auth/models"
)

// withRateLimit throttles requests per client IP using the configured
// [ratelimit.Limiter]. It fails open: when the limiter errors the request is
// served and the failure is logged.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		decision, err := h.limiter.Allow(r.Context(), h.clientIP(r))
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, request allowed")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			seconds := retryAfterSeconds(decision.RetryAfter.Seconds())
			w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
			log.Debug().Str("client_ip", h.clientIP(r)).Msg("rate limit exceeded")
			utils.WriteJSON(w, models.ErrorResponse{
				Error:      app.KindTooManyRequests,
				Message:    app.MsgTooManyRequests,
				RetryAfter: seconds,
			}, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
