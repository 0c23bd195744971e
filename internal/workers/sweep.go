// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/store"
)

// SweepWorker periodically deletes expired token records and login
// attempts older than the retention period.
type SweepWorker struct {
	sweeper   store.Sweeper
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

func NewSweepWorker(sweeper store.Sweeper, cfg config.Workers, logger *logger.Logger) *SweepWorker {
	return &SweepWorker{
		sweeper:   sweeper,
		interval:  cfg.SweepInterval,
		retention: cfg.AttemptRetention,
		now:       time.Now,
		logger:    logger,
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (s *SweepWorker) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("sweep worker started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sweep worker stopped")
			return
		case <-ticker.C:
			// select picks randomly when both channels are ready
			if ctx.Err() != nil {
				s.logger.Info().Msg("sweep worker stopped")
				return
			}
			s.sweep(ctx)
		}
	}
}

func (s *SweepWorker) sweep(ctx context.Context) {
	result, err := s.sweeper.SweepExpired(ctx, s.now(), s.retention)
	if err != nil {
		s.logger.Err(err).Msg("sweep cycle failed")
		return
	}

	s.logger.Debug().
		Int64("expired_tokens", result.ExpiredTokens).
		Int64("stale_attempts", result.StaleAttempts).
		Msg("sweep cycle finished")
}
