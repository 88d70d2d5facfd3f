package db

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SuggestionURLHash generates a SHA-256 hash of a normalized suggestion URL.
// Repeated submissions of the same channel collapse onto one suggestion row.
func SuggestionURLHash(url string) string {
	normalized := strings.TrimRight(strings.ToLower(strings.TrimSpace(url)), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}
