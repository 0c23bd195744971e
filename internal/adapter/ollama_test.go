// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
)

func newTestAdapter(t *testing.T, serverURL string) ModelAdapter {
	t.Helper()
	a, err := NewOllamaAdapter(config.Adapter{OllamaAddress: serverURL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNewOllamaAdapter_InvalidAddress(t *testing.T) {
	_, err := NewOllamaAdapter(config.Adapter{OllamaAddress: "  "}, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "adds scheme", raw: "localhost:11434", want: "http://localhost:11434"},
		{name: "trims slash", raw: "http://ollama:11434/", want: "http://ollama:11434"},
		{name: "keeps https", raw: "https://llm.example.com", want: "https://llm.example.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListModels_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tags", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3:latest","model":"llama3:latest"},{"model":"mistral:7b"}]}`))
	}))
	defer srv.Close()

	models, err := newTestAdapter(t, srv.URL).ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"llama3:latest", "mistral:7b"}, models)
}

func TestListModels_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	models, err := newTestAdapter(t, srv.URL).ListModels(context.Background())

	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestListModels_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("model runtime crashed"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListModels(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "model runtime crashed")
}

func TestListModels_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).ListModels(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}
