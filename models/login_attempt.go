// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LoginAttempt is an append-only audit record of a signin or signup.
//
// Email is whatever the caller submitted (lower-cased); it does not have to
// belong to an existing user, so lockout pressure accrues for unknown
// addresses as well.
type LoginAttempt struct {
	ID          int64
	Email       string
	IPAddress   string
	AttemptedAt time.Time
	Success     bool
}

// SweepResult reports how many rows a cleanup cycle removed.
type SweepResult struct {
	ExpiredTokens int64
	StaleAttempts int64
}

// LockoutStatus is the lockout state of one email, derived from its recent
// failed attempts.
type LockoutStatus struct {
	Locked bool

	// RetryAfter is the time until signin is possible again. Zero when open.
	RetryAfter time.Duration
}
