package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewSuffix returns n lowercase hex characters, capped at 32.
func NewSuffix(n int) string {
	if n <= 0 {
		return ""
	}
	if n > 32 {
		n = 32
	}
	return NewID32()[:n]
}
