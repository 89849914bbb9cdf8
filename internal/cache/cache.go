// Package cache stores annotator responses so repeated documents do not
// hit remote models twice.
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

// keyPrefix is bumped whenever the cached payload shape changes
const keyPrefix = "verdict-v1-"

// Key derives a cache key from its parts, typically the annotator name,
// its model and the text being annotated.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}
