// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/store"
	"github.com/MKhiriev/go-rag-auth/internal/utils"
	"github.com/MKhiriev/go-rag-auth/models"
)

// tokenService is the concrete implementation of TokenService.
// Tokens are HS256 JWTs carrying the user id as "sub", the email, the token
// kind and a UUIDv7 "jti", so two tokens minted in the same second differ.
type tokenService struct {
	tokenRepository store.TokenRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewTokenService constructs a TokenService that verifies tokens against
// tokenRepository and signs them with the security parameters from cfg.
func NewTokenService(tokenRepository store.TokenRepository, cfg config.App, logger *logger.Logger, opts ...Option) TokenService {
	o := newOptions(opts...)
	return &tokenService{
		tokenRepository:      tokenRepository,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		ids:                  utils.NewUUIDGenerator(),
		now:                  o.now,
		logger:               logger,
	}
}

// IssueAccess mints an access token that expires after the access duration.
func (s *tokenService) IssueAccess(ctx context.Context, userID int64, email string) (models.Token, error) {
	return s.issue(userID, email, models.AccessToken, s.accessTokenDuration)
}

// IssueRefresh mints a refresh token that expires after the refresh duration.
func (s *tokenService) IssueRefresh(ctx context.Context, userID int64, email string) (models.Token, error) {
	return s.issue(userID, email, models.RefreshToken, s.refreshTokenDuration)
}

func (s *tokenService) issue(userID int64, email string, kind models.TokenKind, ttl time.Duration) (models.Token, error) {
	now := s.now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        s.ids.Generate(),
		},
		Email: email,
		Type:  kind,
	}

	token, err := utils.SignJWTToken(claims, s.tokenSignKey)
	if err != nil {
		s.logger.Err(err).Str("func", "*tokenService.issue").Str("kind", string(kind)).Msg("error signing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify checks the allow-list first and only then the signature, issuer,
// expiry and kind of the token.
//
// Returns the decoded claims on success or:
//   - ErrStoreUnavailable if the allow-list cannot be read.
//   - ErrRevoked if no active record of the token exists.
//   - ErrInvalidToken on any cryptographic, expiry or kind mismatch.
func (s *tokenService) Verify(ctx context.Context, rawToken string, expectedKind models.TokenKind) (models.Claims, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	revoked, err := s.tokenRepository.IsRevoked(ctx, rawToken, now)
	if err != nil {
		log.Err(err).Str("func", "*tokenService.Verify").Msg("error checking token revocation")
		return models.Claims{}, storeUnavailable(err)
	}
	if revoked {
		return models.Claims{}, ErrRevoked
	}

	claims, err := utils.ValidateAndParseJWTToken(rawToken, s.tokenSignKey, s.tokenIssuer, now)
	if err != nil {
		log.Debug().Err(err).Str("func", "*tokenService.Verify").Msg("token rejected")
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Type != expectedKind {
		log.Debug().
			Str("func", "*tokenService.Verify").
			Str("expected", string(expectedKind)).
			Str("got", string(claims.Type)).
			Msg("token kind mismatch")
		return models.Claims{}, ErrInvalidToken
	}

	return claims, nil
}
