// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"

	"github.com/MKhiriev/go-rag-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/publisher_mock.go -package=mock

// Publisher delivers auth audit events. Publishing is best effort: callers
// log a failure and carry on, an event never decides an auth outcome.
type Publisher interface {
	Publish(ctx context.Context, event models.AuthEvent) error
	Close() error
}
