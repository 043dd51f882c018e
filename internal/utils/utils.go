package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashEmail creates a consistent hash for logging without exposing PII
func HashEmail(email string) string {
	return hashPrefix(strings.ToLower(strings.TrimSpace(email)), 12)
}

// HashPhone hashes the digits of a phone number so formatting differences collapse.
func HashPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return hashPrefix(b.String(), 12)
}

// HashID shortens session and submission identifiers for log lines.
func HashID(id string) string {
	return hashPrefix(id, 8)
}

func hashPrefix(s string, n int) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])[:n]
}
