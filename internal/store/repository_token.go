// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/utils"
	"github.com/MKhiriev/go-rag-auth/models"
)

// tokenRepository is the SQL implementation of [TokenRepository] over the
// "active_tokens" table. Raw tokens never reach the database; every method
// hashes them with [utils.HashToken] first.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// StoreToken records the digest of a freshly minted token. Expiry and issue
// time are taken from the token's claims.
func (r *tokenRepository) StoreToken(ctx context.Context, userID int64, token models.Token) error {
	log := logger.FromContext(ctx)

	issued := models.IssuedToken{
		UserID:    userID,
		TokenHash: utils.HashToken(token.SignedString),
		Kind:      token.Claims.Type,
		ExpiresAt: token.ExpiresAt().UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if token.Claims.IssuedAt != nil {
		issued.CreatedAt = token.Claims.IssuedAt.UTC()
	}

	query, args, err := r.db.storeTokenQuery(issued)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*tokenRepository.StoreToken").Msg("error inserting token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// IsRevoked is default-deny: unknown and expired tokens are revoked.
func (r *tokenRepository) IsRevoked(ctx context.Context, rawToken string, at time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.activeTokenCountQuery(utils.HashToken(rawToken), at.UTC())
	if err != nil {
		return true, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*tokenRepository.IsRevoked").Msg("error looking up token")
		return true, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count == 0, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, rawToken string) error {
	return r.revoke(ctx, sq.Eq{"token_hash": utils.HashToken(rawToken)}, "*tokenRepository.Revoke")
}

// RevokeAllForUser deletes every active token of the user.
func (r *tokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	return r.revoke(ctx, sq.Eq{"user_id": userID}, "*tokenRepository.RevokeAllForUser")
}

func (r *tokenRepository) revoke(ctx context.Context, where sq.Eq, funcName string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.revokeTokenQuery(where)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execWithRetry(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error deleting tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil {
		log.Debug().Str("func", funcName).Int64("revoked", affected).Msg("tokens revoked")
	}

	return nil
}
