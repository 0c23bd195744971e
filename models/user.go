// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique, lower-cased login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never persisted.
	PasswordHash string `json:"-"`

	// FullName is the display name of the user.
	FullName string `json:"full_name"`

	// IsActive is false once the account has been deactivated.
	// Inactive accounts cannot sign in, refresh or use access tokens.
	IsActive bool `json:"is_active"`

	// EmailVerified reports whether the address has been confirmed.
	EmailVerified bool `json:"email_verified"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLogin is the time of the last successful signup or signin.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// PasswordResetToken and PasswordResetExpires are reserved for a
	// password reset flow. They are persisted but not issued by this service.
	PasswordResetToken   *string    `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
}

// Profile returns the public projection of the user record.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:            u.UserID,
		Email:         u.Email,
		FullName:      u.FullName,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
	}
}

// UserProfile is the representation of the current user returned to
// authenticated callers. It never carries credential material.
type UserProfile struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login"`
}
