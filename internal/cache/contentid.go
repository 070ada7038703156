package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentID returns the hex SHA-256 of text. Equal text always yields an
// equal ID, which makes it usable as a cache key component that changes
// exactly when the content does.
func ContentID(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// ContentIDOf returns the ContentID of parts joined with a NUL byte
func ContentIDOf(parts ...string) string {
	return ContentID(strings.Join(parts, "\x00"))
}
