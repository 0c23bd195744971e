// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-rag-auth/internal/adapter"
	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/handler/http"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/ratelimit"
	"github.com/MKhiriev/go-rag-auth/internal/service"
)

// Handlers groups the transport handlers the server exposes.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg. models and
// limiter may be nil.
func NewHandlers(services *service.Services, models adapter.ModelAdapter, limiter ratelimit.Limiter, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, models, limiter, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
