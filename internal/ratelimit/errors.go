// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import "errors"

var (
	ErrRedisUnavailable       = errors.New("redis unavailable")
	ErrUnexpectedScriptResult = errors.New("unexpected rate limit script result")
)
