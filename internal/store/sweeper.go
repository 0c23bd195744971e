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

// sqlSweeper is the SQL implementation of [Sweeper]. Each table is cleaned
// with its own DELETE so no lock is held across both.
type sqlSweeper struct {
	logger *logger.Logger
	db     *DB
}

func NewSweeper(db *DB, logger *logger.Logger) Sweeper {
	logger.Debug().Msg("creating sweeper")
	return &sqlSweeper{
		db:     db,
		logger: logger,
	}
}

func (s *sqlSweeper) SweepExpired(ctx context.Context, now time.Time, retention time.Duration) (models.SweepResult, error) {
	var result models.SweepResult
	now = now.UTC()

	query, args, err := s.db.sweepTokensQuery(now)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if result.ExpiredTokens, err = s.deleteRows(ctx, query, args); err != nil {
		return result, err
	}

	query, args, err = s.db.sweepAttemptsQuery(now.Add(-retention))
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if result.StaleAttempts, err = s.deleteRows(ctx, query, args); err != nil {
		return result, err
	}

	return result, nil
}

func (s *sqlSweeper) deleteRows(ctx context.Context, query string, args []any) (int64, error) {
	res, err := s.db.execWithRetry(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlSweeper.deleteRows").Msg("error deleting rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
