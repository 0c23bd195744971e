// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EventType names an auth audit event.
type EventType string

const (
	EventUserSignedUp    EventType = "user.signed_up"
	EventUserLockedOut   EventType = "user.locked_out"
	EventUserDeactivated EventType = "user.deactivated"
)

// AuthEvent is the audit record published to the message broker.
// UserID is zero for events about an email that may not belong to a user.
type AuthEvent struct {
	Type       EventType `json:"type"`
	UserID     int64     `json:"user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
