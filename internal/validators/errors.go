// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail  = errors.New("email must be a valid address")
	ErrEmptyPassword = errors.New("password is required")

	ErrPasswordTooShort     = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUppercase  = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLowercase  = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoDigit      = errors.New("password must contain at least one digit")
	ErrPasswordNoSymbol     = errors.New("password must contain at least one special character")
	ErrPasswordsDoNotMatch  = errors.New("passwords do not match")
	ErrFullNameTooShort     = errors.New("full name must be at least 2 characters long")
	ErrFullNameInvalidChars = errors.New("full name must contain only letters and spaces")
)
