// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/store"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers creates the application's background workers.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewSweepWorker(storages.Sweeper, cfg, logger),
		},
	}
}

// Run starts every worker in its own goroutine and returns immediately.
// Use Wait to block until they have all stopped.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Go(func() {
			worker.Run(ctx)
		})
	}
}

// Wait blocks until every worker started by Run has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
