// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-rag-auth/internal/adapter"
	"github.com/MKhiriev/go-rag-auth/internal/app"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/service"
	"github.com/MKhiriev/go-rag-auth/internal/utils"
	"github.com/MKhiriev/go-rag-auth/models"
)

// errorMapping binds a sentinel error to the response it produces.
type errorMapping struct {
	target  error
	status  int
	kind    string
	message string
}

// errorMappings is matched in order with [errors.Is]; the first hit wins.
// Store failures are checked first so that an outage is never reported as a
// credentials problem.
var errorMappings = []errorMapping{
	{service.ErrStoreUnavailable, http.StatusServiceUnavailable, app.KindStoreUnavailable, app.MsgServiceUnavailable},
	{service.ErrTooManyAttempts, http.StatusTooManyRequests, app.KindTooManyAttempts, app.MsgTooManyAttempts},
	{service.ErrValidation, http.StatusBadRequest, app.KindValidationError, app.MsgInvalidDataProvided},
	{ErrRequestTooLarge, http.StatusRequestEntityTooLarge, app.KindValidationError, app.MsgRequestTooLarge},
	{ErrInvalidJSON, http.StatusBadRequest, app.KindValidationError, app.MsgInvalidDataProvided},
	{service.ErrDuplicateEmail, http.StatusConflict, app.KindDuplicateEmail, app.MsgEmailAlreadyRegistered},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.KindInvalidCredentials, app.MsgInvalidEmailPassword},
	{service.ErrAccountDisabled, http.StatusUnauthorized, app.KindAccountDisabled, app.MsgAccountDisabled},
	{service.ErrRevoked, http.StatusUnauthorized, app.KindUnauthorized, app.MsgUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized, app.KindUnauthorized, app.MsgUnauthorized},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.KindUnauthorized, app.MsgUnauthorized},
	{ErrNoTokenProvided, http.StatusUnauthorized, app.KindUnauthorized, app.MsgUnauthorized},
	{ErrNoUserInContext, http.StatusUnauthorized, app.KindUnauthorized, app.MsgUnauthorized},
	{adapter.ErrUpstream, http.StatusBadGateway, app.KindUpstreamError, app.MsgUpstreamError},
	{adapter.ErrInvalidAddress, http.StatusBadGateway, app.KindUpstreamError, app.MsgUpstreamError},
}

var internalErrorMapping = errorMapping{
	status:  http.StatusInternalServerError,
	kind:    app.KindInternalError,
	message: app.MsgInternalServerError,
}

func mappingFromError(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m
		}
	}
	return internalErrorMapping
}

func statusFromError(err error) int {
	return mappingFromError(err).status
}

// writeError logs err and writes the JSON error body that corresponds to it.
// Lockouts additionally carry Retry-After, both as a header and in the body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	m := mappingFromError(err)

	body := models.ErrorResponse{Error: m.kind, Message: m.message}

	var lockoutErr *service.LockoutError
	if errors.As(err, &lockoutErr) {
		seconds := retryAfterSeconds(lockoutErr.RetryAfter.Seconds())
		body.RetryAfter = seconds
		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
	}

	if m.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", m.status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", m.status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, body, m.status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}

// retryAfterSeconds rounds up and never advertises less than one second.
func retryAfterSeconds(seconds float64) int64 {
	s := int64(math.Ceil(seconds))
	if s < 1 {
		return 1
	}
	return s
}
