// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events publishes auth audit events (signups, lockouts and
// deactivations) to RabbitMQ. Without a configured broker events are dropped.
package events

import (
	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
)

// NewPublisher returns an AMQP publisher when cfg.AMQPURL is set and a
// no-op publisher otherwise.
func NewPublisher(cfg config.Broker, log *logger.Logger) (Publisher, error) {
	if cfg.AMQPURL == "" {
		log.Warn().Msg("no message broker configured: auth events will be discarded")
		return NewNopPublisher(log), nil
	}

	return NewAMQPPublisher(cfg, log)
}
