// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// HTTP handlers and middleware.
//
// Kind* constants are the machine-checkable "error" field of an error
// response. Msg* constants are the human-readable "message" that goes with
// them. Keeping them in one place keeps the wording consistent throughout
// the API.
package app

// Error kinds.
const (
	KindValidationError    = "validation_error"
	KindDuplicateEmail     = "duplicate_email"
	KindInvalidCredentials = "invalid_credentials"
	KindAccountDisabled    = "account_disabled"
	KindUnauthorized       = "unauthorized"
	KindTooManyAttempts    = "too_many_attempts"
	KindTooManyRequests    = "too_many_requests"
	KindStoreUnavailable   = "store_unavailable"
	KindUpstreamError      = "upstream_error"
	KindInternalError      = "internal_error"
)

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgRequestTooLarge is returned when the request body exceeds the size limit.
	MsgRequestTooLarge = "request body too large"

	// MsgEmailAlreadyRegistered is returned when a signup is rejected because
	// the email is already in use.
	MsgEmailAlreadyRegistered = "email is already registered"

	// MsgInvalidEmailPassword is returned for every signin failure that must
	// not reveal whether the account exists.
	MsgInvalidEmailPassword = "invalid email or password"

	// MsgAccountDisabled is returned when the account has been deactivated.
	MsgAccountDisabled = "account is disabled"

	// MsgUnauthorized covers missing, malformed, expired and revoked tokens.
	MsgUnauthorized = "invalid or expired token"

	// MsgTooManyAttempts is returned while an email is locked out.
	MsgTooManyAttempts = "too many failed signin attempts, try again later"

	// MsgTooManyRequests is returned when the per-client rate limit is hit.
	MsgTooManyRequests = "too many requests"

	// MsgServiceUnavailable is returned when the credential store does not
	// answer.
	MsgServiceUnavailable = "service temporarily unavailable"

	// MsgUpstreamError is returned when the generation backend fails.
	MsgUpstreamError = "generation backend request failed"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
