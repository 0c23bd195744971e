// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
)

// tagsResponse is the body of Ollama's GET /api/tags.
type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

type ollamaAdapter struct {
	client *resty.Client

	logger *logger.Logger
}

// NewOllamaAdapter constructs an Ollama implementation of [ModelAdapter].
// It normalises and validates the base URL from cfg.OllamaAddress and
// configures the resty client with it and the request timeout.
//
// Returns an error if cfg.OllamaAddress is empty or cannot be parsed as a
// valid URL.
func NewOllamaAdapter(cfg config.Adapter, logger *logger.Logger) (ModelAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.OllamaAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &ollamaAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ListModels implements [ModelAdapter] over GET /api/tags.
func (o *ollamaAdapter) ListModels(ctx context.Context) ([]string, error) {
	var tags tagsResponse

	resp, err := o.client.R().
		SetContext(ctx).
		SetResult(&tags).
		Get("/api/tags")
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*ollamaAdapter.ListModels").Msg("request failed")
		return nil, fmt.Errorf("%w: list models request: %w", ErrUpstream, err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*ollamaAdapter.ListModels").Msg("backend answered with error")
		return nil, err
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		names = append(names, name)
	}

	return names, nil
}
