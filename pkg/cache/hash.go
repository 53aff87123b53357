package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Key builds a namespaced cache key from a prefix and a raw identifier.
// The identifier is hashed so arbitrary snapshot strings stay key-safe.
func Key(prefix, id string) string {
	return prefix + ":" + Hash([]byte(id))
}
