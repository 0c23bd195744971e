// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrUpstream       = errors.New("generation backend error")
	ErrInvalidAddress = errors.New("invalid backend address")
)
