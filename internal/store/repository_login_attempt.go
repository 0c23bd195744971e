// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/models"
)

// loginAttemptRepository is the SQL implementation of
// [LoginAttemptRepository] over the "login_attempts" table.
type loginAttemptRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewLoginAttemptRepository(db *DB, logger *logger.Logger) LoginAttemptRepository {
	logger.Debug().Msg("creating login attempt repository")
	return &loginAttemptRepository{
		db:     db,
		logger: logger,
	}
}

// RecordAttempt appends one attempt. The email is stored lower-cased.
func (r *loginAttemptRepository) RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error {
	log := logger.FromContext(ctx)

	attempt.Email = normalizeEmail(attempt.Email)
	attempt.AttemptedAt = attempt.AttemptedAt.UTC()

	query, args, err := r.db.recordAttemptQuery(attempt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.RecordAttempt").Msg("error inserting login attempt")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *loginAttemptRepository) CountFailedAttempts(ctx context.Context, email string, since time.Time) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.countFailedAttemptsQuery(normalizeEmail(email), utcOrZero(since))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.CountFailedAttempts").Msg("error counting failed attempts")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

func (r *loginAttemptRepository) FailedAttemptTimes(ctx context.Context, email string, since time.Time) ([]time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.failedAttemptTimesQuery(normalizeEmail(email), utcOrZero(since))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.FailedAttemptTimes").Msg("error selecting failed attempts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	times := make([]time.Time, 0)
	for rows.Next() {
		var attemptedAt time.Time
		if err = rows.Scan(&attemptedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		times = append(times, attemptedAt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return times, nil
}

// ClearAttempts deletes every attempt row of the email.
func (r *loginAttemptRepository) ClearAttempts(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.clearAttemptsQuery(normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.ClearAttempts").Msg("error deleting login attempts")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
