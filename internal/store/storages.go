// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
)

// Storages groups all repositories of the credential store into a single
// value that can be passed to the service layer.
type Storages struct {
	UserRepository         UserRepository
	LoginAttemptRepository LoginAttemptRepository
	TokenRepository        TokenRepository
	Sweeper                Sweeper

	db *DB
}

// NewStorages initialises the storage layer:
//  1. Opens the database selected by cfg.DB.Driver (SQLite or PostgreSQL).
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires every repository to the connection.
//
// Returns an error if the connection cannot be established or migration fails.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB wires the repositories to an already migrated connection.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		LoginAttemptRepository: NewLoginAttemptRepository(db, log),
		TokenRepository:        NewTokenRepository(db, log),
		Sweeper:                NewSweeper(db, log),
		db:                     db,
	}
}

// Ping verifies that the database still answers.
func (s *Storages) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
