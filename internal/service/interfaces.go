// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-rag-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService is the session manager: the only component the transport layer
// calls for authentication. Every error it returns matches one of the
// sentinels in errors.go.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest, clientIP string) (models.TokenPair, error)
	Signin(ctx context.Context, req models.SigninRequest, clientIP string) (models.TokenPair, error)
	// Refresh mints a new access token. The refresh token is echoed back.
	Refresh(ctx context.Context, rawRefreshToken string) (models.TokenPair, error)
	// Logout revokes every given token. Unknown tokens are ignored.
	Logout(ctx context.Context, rawTokens ...string) error
	// Authenticate resolves an access token to an active user.
	Authenticate(ctx context.Context, rawAccessToken string) (models.User, error)
	CurrentUser(ctx context.Context, rawAccessToken string) (models.UserProfile, error)
	// Deactivate disables the account and revokes all of its tokens.
	Deactivate(ctx context.Context, userID int64) error
}

// TokenService mints and verifies signed tokens. Verification consults the
// token allow-list before the signature is trusted.
type TokenService interface {
	IssueAccess(ctx context.Context, userID int64, email string) (models.Token, error)
	IssueRefresh(ctx context.Context, userID int64, email string) (models.Token, error)
	Verify(ctx context.Context, rawToken string, expectedKind models.TokenKind) (models.Claims, error)
}

// LockoutGuard derives brute-force lockout state from the login attempt log.
type LockoutGuard interface {
	Check(ctx context.Context, email string) (models.LockoutStatus, error)
	Record(ctx context.Context, email, ipAddress string, success bool) error
	Reset(ctx context.Context, email string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// Health returns ErrStoreUnavailable when the store does not answer.
	Health(ctx context.Context) error
}
