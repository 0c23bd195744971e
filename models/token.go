// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates access tokens from refresh tokens. The kind is
// embedded in the signed payload so one kind can never stand in for the other.
type TokenKind string

const (
	// AccessToken authorizes API calls. Short-lived.
	AccessToken TokenKind = "access"

	// RefreshToken is used solely to mint new access tokens. Long-lived.
	RefreshToken TokenKind = "refresh"
)

// TokenTypeBearer is the token_type value returned in every [TokenPair].
const TokenTypeBearer = "bearer"

// Claims is the JWT payload issued by the token service.
//
// It embeds [jwt.RegisteredClaims] for the standard claim set
// (sub, exp, iat, iss, jti) and adds the user's email and the token kind.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the lower-cased email of the subject at issue time.
	Email string `json:"email"`

	// Type is the token kind ("access" or "refresh").
	Type TokenKind `json:"type"`
}

// GetUserID extracts the user identifier from the "sub" claim,
// parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (c Claims) GetUserID() (int64, error) {
	userIDString, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Token is a freshly minted, signed token together with its decoded claims.
type Token struct {
	// Claims holds the payload the token was signed with.
	Claims Claims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string
}

// ExpiresAt returns the expiry embedded in the token.
func (t Token) ExpiresAt() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// TokenPair is the credential bundle returned by signup, signin and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`
}

// IssuedToken is the persisted record of an active token. Only the one-way
// digest of the token is stored, never the raw token string.
type IssuedToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	Kind      TokenKind
	ExpiresAt time.Time
	CreatedAt time.Time
}
