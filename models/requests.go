// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignupRequest is the payload of POST /api/auth/signup.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
}

// SigninRequest is the payload of POST /api/auth/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token. It is the payload of
// POST /api/auth/refresh and the optional body of POST /api/auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
