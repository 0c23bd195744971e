// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex-encoded SHA-256 digest of a raw token string.
//
// Only this digest is ever persisted, so a leaked database does not yield
// usable tokens. The digest is deterministic: the same token always maps to
// the same 64-character string, which is what makes allow-list lookups work.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
