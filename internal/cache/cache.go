package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Guard admits at most one holder per key at a time
type Guard interface {
	// Acquire claims key. When ok is false the key is already held and
	// release is a no-op.
	Acquire(key string) (release func(), ok bool)
}

// Key builds a namespaced key from its parts
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "factcheck:v1:" + hex.EncodeToString(hash[:])
}
