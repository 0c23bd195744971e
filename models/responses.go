// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	// Error is a machine-checkable kind, e.g. "invalid_credentials".
	Error string `json:"error"`

	// Message is a human-readable explanation.
	Message string `json:"message"`

	// RetryAfter is set for lockouts: seconds until signin is possible again.
	RetryAfter int64 `json:"retry_after,omitempty"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ModelsResponse lists the models available on the generation backend.
type ModelsResponse struct {
	Models []string `json:"models"`
}
