package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) UUID as 32 lowercase hex characters, without dashes.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
