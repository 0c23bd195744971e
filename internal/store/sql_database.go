// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/migrations"
)

// DB wraps a *sql.DB with the dialect-specific pieces every repository needs:
// the driver name, a query builder with the right placeholder format and an
// error classifier.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// retryDelays are the waits between attempts of a statement that failed
// with a retryable error. Their count bounds the number of retries.
var retryDelays = []time.Duration{50 * time.Millisecond, 150 * time.Millisecond}

func newDB(conn *sql.DB, driver string, placeholder sq.PlaceholderFormat, classificator ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		driver:             driver,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.driver)
}

// isUniqueViolation reports whether err is a unique constraint violation.
func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsUniqueViolation(err)
}

// isRetryable reports whether the failed operation may succeed if repeated.
func (db *DB) isRetryable(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}

// execWithRetry runs a write statement, repeating it while the driver reports
// a transient failure (lock contention, serialization failure, lost
// connection).
func (db *DB) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := db.ExecContext(ctx, query, args...)
	for _, delay := range retryDelays {
		if err == nil || !db.isRetryable(err) {
			break
		}

		logger.FromContext(ctx).Warn().Err(err).Str("func", "*DB.execWithRetry").Dur("delay", delay).Msg("retrying statement")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		result, err = db.ExecContext(ctx, query, args...)
	}

	return result, err
}

// normalizeEmail is the canonical form emails are stored and compared in.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
