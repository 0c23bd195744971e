// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTooManyAttempts    = errors.New("too many failed signin attempts")

	ErrRevoked      = errors.New("token has been revoked")
	ErrInvalidToken = errors.New("token is invalid or expired")

	ErrStoreUnavailable = errors.New("credential store unavailable")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// LockoutError is returned by signin while the email is locked out.
// It matches ErrTooManyAttempts with errors.Is.
type LockoutError struct {
	// RetryAfter is the time until the oldest counted failure leaves the window.
	RetryAfter time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrTooManyAttempts, e.RetryAfter.Round(time.Second))
}

func (e *LockoutError) Unwrap() error {
	return ErrTooManyAttempts
}

// storeUnavailable marks err as an infrastructure failure.
func storeUnavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
