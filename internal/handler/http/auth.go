// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/utils"
	"github.com/MKhiriev/go-rag-auth/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Signup(ctx, req, h.clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Msg("user signed up")
	utils.WriteJSON(w, pair, http.StatusCreated)
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SigninRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Signin(ctx, req, h.clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Msg("user signed in")
	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

// logout revokes the bearer token and, when the body names one, the refresh
// token. It answers 204 even for tokens that were already revoked.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var tokens []string
	if header := r.Header.Get("Authorization"); header != "" {
		accessToken, err := utils.ParseBearerToken(header)
		if err != nil {
			writeError(w, r, err)
			return
		}
		tokens = append(tokens, accessToken)
	}

	var req models.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, err)
		return
	}
	if req.RefreshToken != "" {
		tokens = append(tokens, req.RefreshToken)
	}

	if len(tokens) == 0 {
		writeError(w, r, ErrNoTokenProvided)
		return
	}

	if err := h.services.AuthService.Logout(ctx, tokens...); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int("tokens", len(tokens)).Msg("user logged out")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	utils.WriteJSON(w, user.Profile(), http.StatusOK)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	if err := h.services.AuthService.Deactivate(ctx, userID); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("user deactivated")
	w.WriteHeader(http.StatusNoContent)
}

// maxRequestBodySize caps every auth request body.
const maxRequestBodySize = 4 << 10

// decodeJSON decodes at most maxRequestBodySize bytes of the body into dst.
// The decoder error stays in the chain, so an empty body matches io.EOF.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	err := json.NewDecoder(r.Body).Decode(dst)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &tooLarge):
		return fmt.Errorf("%w: %w", ErrRequestTooLarge, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
}
