// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	repo := &userRepository{db: db, logger: logger.Nop()}
	return repo, mock
}

func userRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(1, "john@x.com", "hash", "John Doe", true, false, now, nil, nil, nil)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := models.User{
		Email:        "  John@X.com ",
		PasswordHash: "hash",
		FullName:     "John Doe",
		IsActive:     true,
		CreatedAt:    now,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("john@x.com", "hash", "John Doe", true, false, now).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "john@x.com", created.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@x.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@x.com"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.True(t, IsInfrastructureError(err))
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT user_id, email, password_hash").
		WithArgs("john@x.com").
		WillReturnRows(userRows(now))

	found, err := repo.FindUserByEmail(context.Background(), "JOHN@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.UserID)
	assert.Equal(t, "john@x.com", found.Email)
	assert.True(t, found.IsActive)
	assert.Nil(t, found.LastLogin)
	assert.Nil(t, found.PasswordResetToken)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByEmail(context.Background(), "john@x.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByID_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(7)).
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByID_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	// intentionally wrong shape → scan error
	mock.ExpectQuery("SELECT user_id").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))

	_, err := repo.FindUserByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestTouchLastLogin(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec("UPDATE users SET last_login").
		WithArgs(at, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchLastLogin(context.Background(), 1, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchLastLogin_NoRows(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TouchLastLogin(context.Background(), 1, time.Now())
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestDeactivateUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users SET is_active").
		WithArgs(false, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeactivateUser(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateUser_RetriesTransientError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeactivateUser(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateUser_DoesNotRetryPermanentError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnError(pgError(pgerrcode.SyntaxError))

	err := repo.DeactivateUser(context.Background(), 3)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}
