// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
)

// newMockDB returns a PostgreSQL-flavoured DB over sqlmock.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return newDB(conn, config.DriverPostgres, sq.Dollar, NewPostgresErrorClassifier(), logger.Nop()), mock
}

// newSQLiteStorages returns storages over a fresh, migrated in-memory database.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	s, err := NewStorages(context.Background(), config.Storage{
		DB: config.DB{Driver: config.DriverSQLite, DSN: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}
