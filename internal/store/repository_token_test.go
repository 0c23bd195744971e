// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/utils"
	"github.com/MKhiriev/go-rag-auth/models"
)

func newTestTokenRepo(t *testing.T) (*tokenRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &tokenRepository{db: db, logger: logger.Nop()}, mock
}

func testToken(raw string, kind models.TokenKind, issued, expires time.Time) models.Token {
	return models.Token{
		Claims: models.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(expires),
			},
			Type: kind,
		},
		SignedString: raw,
	}
}

func TestStoreToken_PersistsDigestOnly(t *testing.T) {
	repo, mock := newTestTokenRepo(t)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expires := issued.Add(30 * time.Minute)

	mock.ExpectExec("INSERT INTO active_tokens").
		WithArgs(int64(5), utils.HashToken("raw.token"), "access", expires, issued).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.StoreToken(context.Background(), 5, testToken("raw.token", models.AccessToken, issued, expires))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreToken_Error(t *testing.T) {
	repo, mock := newTestTokenRepo(t)

	mock.ExpectExec("INSERT INTO active_tokens").WillReturnError(errors.New("disk full"))

	err := repo.StoreToken(context.Background(), 5, testToken("raw", models.RefreshToken, time.Now(), time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestIsRevoked(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{name: "active record", count: 1, want: false},
		{name: "no record", count: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestTokenRepo(t)
			mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM active_tokens").
				WithArgs(utils.HashToken("raw"), at).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			revoked, err := repo.IsRevoked(context.Background(), "raw", at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, revoked)
		})
	}
}

func TestIsRevoked_StoreErrorDenies(t *testing.T) {
	repo, mock := newTestTokenRepo(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("connection reset"))

	revoked, err := repo.IsRevoked(context.Background(), "raw", time.Now())
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.True(t, revoked)
}

func TestRevoke(t *testing.T) {
	repo, mock := newTestTokenRepo(t)
	mock.ExpectExec("DELETE FROM active_tokens WHERE token_hash").
		WithArgs(utils.HashToken("raw")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// revoking an unknown token is not an error
	require.NoError(t, repo.Revoke(context.Background(), "raw"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeAllForUser(t *testing.T) {
	repo, mock := newTestTokenRepo(t)
	mock.ExpectExec("DELETE FROM active_tokens WHERE user_id").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.RevokeAllForUser(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
