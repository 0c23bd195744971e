// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same (lower-cased) email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query or update expected to match
	// a user record matches nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUnsupportedDriver is returned by [NewStorages] for an unknown
	// database driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied. Each of them means the store is unavailable for the
// operation, not that a domain rule was violated.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

// IsInfrastructureError reports whether err is one of the low-level
// database errors above.
func IsInfrastructureError(err error) bool {
	return errors.Is(err, ErrBuildingSQLQuery) ||
		errors.Is(err, ErrExecutingQuery) ||
		errors.Is(err, ErrExecutingStatement) ||
		errors.Is(err, ErrScanningRow) ||
		errors.Is(err, ErrScanningRows)
}
