// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withSecurityHeaders)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/signin", h.signin)
		r.Post("/api/auth/refresh", h.refresh)
		r.Post("/api/auth/logout", h.logout)
	})

	router.Get("/api/health", h.health)
	router.Get("/api/version", h.getServerVersion)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/auth/me", h.me)
		r.Delete("/api/auth/me", h.deactivate)
		if h.models != nil {
			r.Get("/api/models", h.listModels)
		}
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
