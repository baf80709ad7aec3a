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

// Key generates a cache key for one (provider, sample) pair. The
// sample text is hashed, never stored in the key, so keys stay short
// and filesystem-safe regardless of sample size.
func Key(provider, sample string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + sample))
	return "authorscan:v1:" + hex.EncodeToString(hash[:])
}
