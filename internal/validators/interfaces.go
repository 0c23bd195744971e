// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks auth request payloads before they reach the
// credential store.
//
// [AuthValidator] understands signup and signin requests. The standalone
// rule functions (ValidateEmail, ValidatePassword, ValidateFullName) are the
// password and identity policy. Each violation is a sentinel from errors.go
// that the service layer wraps as a validation failure.
package validators

import "context"

// Validator validates a request value. Passing field names restricts the
// check to those fields; with none, every field is checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
