// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-rag-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts. Emails are lower-cased on write and
// on lookup, so all email comparisons are case-insensitive.
type UserRepository interface {
	// CreateUser inserts the user and returns it with UserID set.
	// Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns ErrNoUserWasFound when nothing matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns ErrNoUserWasFound when nothing matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
	DeactivateUser(ctx context.Context, userID int64) error
}

// LoginAttemptRepository is the append-only signin audit log the lockout
// decision is derived from.
type LoginAttemptRepository interface {
	RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error
	// CountFailedAttempts counts failures for email newer than since.
	// A zero since counts the whole history.
	CountFailedAttempts(ctx context.Context, email string, since time.Time) (int, error)
	// FailedAttemptTimes returns the same rows' timestamps, oldest first.
	FailedAttemptTimes(ctx context.Context, email string, since time.Time) ([]time.Time, error)
	ClearAttempts(ctx context.Context, email string) error
}

// TokenRepository is the allow-list of issued tokens. Only digests of raw
// tokens are stored.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID int64, token models.Token) error
	// IsRevoked reports true unless a record for the token exists and has
	// not expired at the given time.
	IsRevoked(ctx context.Context, rawToken string, at time.Time) (bool, error)
	// Revoke deletes the token record. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, rawToken string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// Sweeper deletes rows that no longer carry meaning.
type Sweeper interface {
	// SweepExpired removes token records expired at now and login attempts
	// older than now minus retention.
	SweepExpired(ctx context.Context, now time.Time, retention time.Duration) (models.SweepResult, error)
}

// ErrorClassificator maps driver errors to store semantics.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
