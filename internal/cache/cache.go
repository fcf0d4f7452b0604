// Package cache provides the in-memory cache used for fetched corpus pages
// and oracle judgment responses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a stable cache key from arbitrary input text (a URL or a
// full prompt).
func Key(input string) string {
	hash := sha256.Sum256([]byte(input))
	return "triplex:v1:" + hex.EncodeToString(hash[:])
}
