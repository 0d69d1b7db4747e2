package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA256 hex digest of an invocation.
// An empty invocation has an empty digest
func Digest(invocation string) string {
	if invocation == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(invocation))
	return hex.EncodeToString(sum[:])
}
