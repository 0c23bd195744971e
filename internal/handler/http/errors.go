// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidJSON is reported when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrRequestTooLarge is reported when a request body exceeds the size
	// limit of the auth endpoints.
	ErrRequestTooLarge = errors.New("request body too large")

	// ErrNoUserInContext is reported when a protected handler runs without
	// the auth middleware having stored a user in the request context.
	ErrNoUserInContext = errors.New("no authenticated user in request context")

	// ErrNoTokenProvided is reported by logout when neither a bearer token
	// nor a refresh token was sent.
	ErrNoTokenProvided = errors.New("no token provided")
)
