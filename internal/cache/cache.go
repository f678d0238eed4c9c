// Package cache remembers which prompt fingerprints have already been built.
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
	// Claim stores value only if key is absent. When key already exists the
	// stored value is returned with claimed=false.
	Claim(key string, value []byte, ttl time.Duration) (existing []byte, claimed bool, err error)
	Delete(key string) error
	Clear() error
}

// CacheKey generates a fixed-length cache key from a prompt fingerprint
func CacheKey(fingerprint string) string {
	hash := sha256.Sum256([]byte(fingerprint))
	return "blueprint:v1:" + hex.EncodeToString(hash[:])
}

// New returns a memory cache, layered over disk when dir is set
func New(ttl time.Duration, dir string) Cache {
	if dir == "" {
		return NewMemoryCache(ttl, 10*time.Minute)
	}
	return NewLayeredCache(ttl, dir, ttl)
}
