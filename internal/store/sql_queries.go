// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rag-auth/models"
)

const (
	usersTable         = "users"
	loginAttemptsTable = "login_attempts"
	activeTokensTable  = "active_tokens"
)

// userColumns is the column order every user SELECT scans in.
var userColumns = []string{
	"user_id",
	"email",
	"password_hash",
	"full_name",
	"is_active",
	"email_verified",
	"created_at",
	"last_login",
	"password_reset_token",
	"password_reset_expires",
}

// userScanTargets returns scan destinations matching userColumns.
func userScanTargets(user *models.User) []any {
	return []any{
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.IsActive,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.LastLogin,
		&user.PasswordResetToken,
		&user.PasswordResetExpires,
	}
}

func (db *DB) createUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns("email", "password_hash", "full_name", "is_active", "email_verified", "created_at").
		Values(user.Email, user.PasswordHash, user.FullName, user.IsActive, user.EmailVerified, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
}

func (db *DB) findUserQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func (db *DB) touchLastLoginQuery(userID int64, at time.Time) (string, []any, error) {
	return db.builder.
		Update(usersTable).
		Set("last_login", at).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func (db *DB) deactivateUserQuery(userID int64) (string, []any, error) {
	return db.builder.
		Update(usersTable).
		Set("is_active", false).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func (db *DB) recordAttemptQuery(attempt models.LoginAttempt) (string, []any, error) {
	return db.builder.
		Insert(loginAttemptsTable).
		Columns("email", "ip_address", "attempted_at", "success").
		Values(attempt.Email, attempt.IPAddress, attempt.AttemptedAt, attempt.Success).
		ToSql()
}

// failedAttemptsWhere selects the failures of email newer than since;
// a zero since selects the whole history.
func failedAttemptsWhere(email string, since time.Time) sq.And {
	where := sq.And{sq.Eq{"email": email, "success": false}}
	if !since.IsZero() {
		where = append(where, sq.Gt{"attempted_at": since})
	}
	return where
}

func (db *DB) countFailedAttemptsQuery(email string, since time.Time) (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(loginAttemptsTable).
		Where(failedAttemptsWhere(email, since)).
		ToSql()
}

func (db *DB) failedAttemptTimesQuery(email string, since time.Time) (string, []any, error) {
	return db.builder.
		Select("attempted_at").
		From(loginAttemptsTable).
		Where(failedAttemptsWhere(email, since)).
		OrderBy("attempted_at ASC").
		ToSql()
}

func (db *DB) clearAttemptsQuery(email string) (string, []any, error) {
	return db.builder.
		Delete(loginAttemptsTable).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func (db *DB) storeTokenQuery(token models.IssuedToken) (string, []any, error) {
	return db.builder.
		Insert(activeTokensTable).
		Columns("user_id", "token_hash", "token_type", "expires_at", "created_at").
		Values(token.UserID, token.TokenHash, string(token.Kind), token.ExpiresAt, token.CreatedAt).
		ToSql()
}

func (db *DB) activeTokenCountQuery(tokenHash string, at time.Time) (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(activeTokensTable).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Gt{"expires_at": at}).
		ToSql()
}

func (db *DB) revokeTokenQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Delete(activeTokensTable).
		Where(where).
		ToSql()
}

func (db *DB) sweepTokensQuery(now time.Time) (string, []any, error) {
	return db.builder.
		Delete(activeTokensTable).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}

func (db *DB) sweepAttemptsQuery(before time.Time) (string, []any, error) {
	return db.builder.
		Delete(loginAttemptsTable).
		Where(sq.Lt{"attempted_at": before}).
		ToSql()
}
