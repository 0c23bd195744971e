// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-rag-auth/internal/adapter"
	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/ratelimit"
	"github.com/MKhiriev/go-rag-auth/internal/service"
	"github.com/MKhiriev/go-rag-auth/internal/utils"
)

// Handler serves the REST API. It holds no request state; every dependency
// is shared by concurrent requests.
type Handler struct {
	services *service.Services

	// models lists the generation backend's models. GET /api/models is not
	// registered when it is nil.
	models adapter.ModelAdapter

	// limiter throttles the public auth routes per client IP. Nil disables
	// rate limiting.
	limiter ratelimit.Limiter

	// trustProxy takes the client IP from X-Forwarded-For.
	trustProxy bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, models adapter.ModelAdapter, limiter ratelimit.Limiter, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Bool("trust_proxy_headers", cfg.TrustProxyHeaders).Msg("http handler created")
	return &Handler{
		services:   services,
		models:     models,
		limiter:    limiter,
		trustProxy: cfg.TrustProxyHeaders,
		logger:     logger,
	}
}

func (h *Handler) clientIP(r *http.Request) string {
	return utils.ClientIP(r, h.trustProxy)
}
