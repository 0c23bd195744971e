// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/events"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/store"
)

// Services groups the services the transport layer depends on.
type Services struct {
	AuthService    AuthService
	TokenService   TokenService
	AppInfoService AppInfoService
}

// NewServices wires every service to the storages and the configuration.
// Options apply to all services, tests use them to inject a clock.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, publisher events.Publisher, logger *logger.Logger, opts ...Option) (*Services, error) {
	tokenService := NewTokenService(storages.TokenRepository, cfg.App, logger, opts...)
	lockoutGuard := NewLockoutGuard(storages.LoginAttemptRepository, cfg.App, logger, opts...)

	authService, err := NewAuthService(storages, tokenService, lockoutGuard, publisher, cfg.App, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    authService,
		TokenService:   tokenService,
		AppInfoService: appInfoService,
	}, nil
}
