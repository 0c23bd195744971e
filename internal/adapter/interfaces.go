// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external collaborators of the
// service.
//
// The primary abstraction is [ModelAdapter], which decouples the transport
// layer from the generation backend. The package ships an Ollama
// implementation ([NewOllamaAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling.
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/model_adapter_mock.go -package=mock

// ModelAdapter talks to the generation backend. Retrieval and generation
// calls live outside this service; only model discovery is exposed.
type ModelAdapter interface {
	// ListModels returns the names of the models installed on the backend.
	// Returns ErrUpstream (wrapped) if the backend is unreachable or answers
	// with a non-2xx status.
	ListModels(ctx context.Context) ([]string, error)
}
