// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/mock"
	"github.com/MKhiriev/go-rag-auth/internal/service"
	"github.com/MKhiriev/go-rag-auth/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testAccessToken  = "access.jwt.token"
	testRefreshToken = "refresh.jwt.token"
	testClientIP     = "203.0.113.7"
)

// newTestHandler creates a Handler with a nop logger and no dependencies.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// testDeps holds the mocks behind a router built by newTestRouter.
type testDeps struct {
	auth    *mock.MockAuthService
	appInfo *mock.MockAppInfoService
	models  *mock.MockModelAdapter
	limiter *mock.MockLimiter
}

// newTestRouter wires a Handler to fresh mocks. withLimiter controls whether
// the rate limiter is installed.
func newTestRouter(t *testing.T, withLimiter bool) (http.Handler, testDeps) {
	t.Helper()
	return newTestRouterBehindProxy(t, withLimiter, false)
}

// newTestRouterBehindProxy is newTestRouter with X-Forwarded-For trust set
// by trustProxy.
func newTestRouterBehindProxy(t *testing.T, withLimiter, trustProxy bool) (http.Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		auth:    mock.NewMockAuthService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
		models:  mock.NewMockModelAdapter(ctrl),
	}

	h := &Handler{
		services: &service.Services{
			AuthService:    deps.auth,
			AppInfoService: deps.appInfo,
		},
		models:     deps.models,
		trustProxy: trustProxy,
		logger:     logger.Nop(),
	}
	if withLimiter {
		deps.limiter = mock.NewMockLimiter(ctrl)
		h.limiter = deps.limiter
	}

	return h.Init(), deps
}

// newBufferedHandler returns a Handler whose logger writes JSON lines to buf.
func newBufferedHandler(buf *bytes.Buffer) *Handler {
	return &Handler{logger: &logger.Logger{Logger: zerolog.New(buf)}}
}

// doRequest sends a request through router. A non-nil body is encoded as JSON
// unless it already is a string.
func doRequest(t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = testClientIP + ":54321"
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func testPair() models.TokenPair {
	return models.TokenPair{
		AccessToken:  testAccessToken,
		RefreshToken: testRefreshToken,
		TokenType:    models.TokenTypeBearer,
		ExpiresIn:    1800,
	}
}
