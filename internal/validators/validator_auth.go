// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-rag-auth/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldFullName        = "full_name"
)

const (
	minPasswordLength = 8
	minFullNameLength = 2

	// passwordSymbols is the punctuation set a password must draw from.
	passwordSymbols = `!@#$%^&*(),.?":{}|<>`
)

// AuthValidator enforces the password policy and the syntax rules of signup
// and signin requests. It performs no I/O.
type AuthValidator struct {
}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

// Validate checks a signup or signin request. The first violated rule is
// returned as its sentinel error.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(ctx, value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(ctx, *value, fields...)

	case models.SigninRequest:
		return v.validateSignin(ctx, value, fields...)
	case *models.SigninRequest:
		return v.validateSignin(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateSignup(ctx context.Context, req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldConfirmPassword, FieldFullName}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = ValidateEmail(req.Email)
		case FieldPassword:
			err = ValidatePassword(req.Password)
		case FieldConfirmPassword:
			if req.ConfirmPassword != req.Password {
				err = ErrPasswordsDoNotMatch
			}
		case FieldFullName:
			err = ValidateFullName(req.FullName)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AuthValidator) validateSignin(ctx context.Context, req models.SigninRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := ValidateEmail(req.Email); err != nil {
				return err
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidatePassword checks the password strength rules in order: length,
// uppercase, lowercase, digit, symbol.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return ErrPasswordNoUppercase
	case !hasLower:
		return ErrPasswordNoLowercase
	case !hasDigit:
		return ErrPasswordNoDigit
	case !hasSymbol:
		return ErrPasswordNoSymbol
	}

	return nil
}

// ValidateFullName requires at least two characters after trimming, made of
// ASCII letters and whitespace only.
func ValidateFullName(fullName string) error {
	trimmed := strings.TrimSpace(fullName)
	if utf8.RuneCountInString(trimmed) < minFullNameLength {
		return ErrFullNameTooShort
	}

	for _, r := range trimmed {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isLetter && !unicode.IsSpace(r) {
			return ErrFullNameInvalidChars
		}
	}

	return nil
}

// ValidateEmail accepts a bare address (no display name) whose domain has at
// least one dot.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	at := strings.LastIndexByte(email, '@')
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ErrInvalidEmail
	}

	return nil
}
