// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit throttles requests per client with a token bucket kept
// in Redis, so every replica of the service shares one bucket per client.
package ratelimit

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/limiter_mock.go -package=mock

// Limiter takes one token from the bucket identified by key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int64

	// RetryAfter is the time until the next token is available. Zero when
	// the request was allowed.
	RetryAfter time.Duration
}
