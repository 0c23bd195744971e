// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"

	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/models"
)

// nopPublisher drops every event. It is used when no broker is configured.
type nopPublisher struct {
	logger *logger.Logger
}

// NewNopPublisher returns a Publisher that only logs events at debug level.
func NewNopPublisher(log *logger.Logger) Publisher {
	return &nopPublisher{logger: log}
}

func (p *nopPublisher) Publish(ctx context.Context, event models.AuthEvent) error {
	p.logger.Debug().Str("event", string(event.Type)).Msg("event discarded: no broker configured")
	return nil
}

func (p *nopPublisher) Close() error {
	return nil
}
