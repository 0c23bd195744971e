// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/store"
	"github.com/MKhiriev/go-rag-auth/models"
)

// lockoutGuard locks an email once maxAttempts failures fall inside the
// sliding window. No lockout state is stored: it is recomputed from the
// attempt log on every check, so it lifts by itself as the window slides.
type lockoutGuard struct {
	attempts store.LoginAttemptRepository

	maxAttempts int
	window      time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewLockoutGuard constructs a LockoutGuard with the thresholds from cfg.
func NewLockoutGuard(attempts store.LoginAttemptRepository, cfg config.App, logger *logger.Logger, opts ...Option) LockoutGuard {
	o := newOptions(opts...)
	return &lockoutGuard{
		attempts:    attempts,
		maxAttempts: cfg.MaxLoginAttempts,
		window:      cfg.LockoutWindow,
		now:         o.now,
		logger:      logger,
	}
}

// Check reports whether email is locked. A locked signin is itself recorded
// as a failure, so RetryAfter counts that attempt at now and is the time
// until enough failures leave the window for it to fall below the threshold.
func (g *lockoutGuard) Check(ctx context.Context, email string) (models.LockoutStatus, error) {
	now := g.now()

	times, err := g.attempts.FailedAttemptTimes(ctx, email, now.Add(-g.window))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*lockoutGuard.Check").Msg("error reading login attempts")
		return models.LockoutStatus{}, storeUnavailable(err)
	}

	if len(times) < g.maxAttempts {
		return models.LockoutStatus{}, nil
	}

	times = append(times, now)
	retryAfter := times[len(times)-g.maxAttempts].Add(g.window).Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}

	return models.LockoutStatus{Locked: true, RetryAfter: retryAfter}, nil
}

// Record appends an attempt to the log.
func (g *lockoutGuard) Record(ctx context.Context, email, ipAddress string, success bool) error {
	err := g.attempts.RecordAttempt(ctx, models.LoginAttempt{
		Email:       email,
		IPAddress:   ipAddress,
		AttemptedAt: g.now(),
		Success:     success,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*lockoutGuard.Record").Msg("error recording login attempt")
		return storeUnavailable(err)
	}

	return nil
}

// Reset forgets every attempt of email.
func (g *lockoutGuard) Reset(ctx context.Context, email string) error {
	if err := g.attempts.ClearAttempts(ctx, email); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*lockoutGuard.Reset").Msg("error clearing login attempts")
		return storeUnavailable(err)
	}

	return nil
}
