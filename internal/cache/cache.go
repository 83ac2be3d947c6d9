// Package cache keeps parsed datasets in memory so reselecting a recent
// source skips the fetch/parse work. Entries expire on a TTL; a cache miss
// just means a full reload.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the dataset cache interface
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key generates a cache key from a source reference
func Key(sourceRef string) string {
	hash := sha256.Sum256([]byte(sourceRef))
	return "claimlens:v1:" + hex.EncodeToString(hash[:])
}
