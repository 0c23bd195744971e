// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"
)

// Option customises the clock and the failure delay of the services.
type Option func(*options)

type options struct {
	now   func() time.Time
	delay func(ctx context.Context, d time.Duration) error
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithDelay replaces the wait applied on failed signins.
func WithDelay(delay func(ctx context.Context, d time.Duration) error) Option {
	return func(o *options) {
		o.delay = delay
	}
}

func newOptions(opts ...Option) options {
	o := options{
		now:   time.Now,
		delay: sleepContext,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
