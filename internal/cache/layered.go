package cache

import (
	"os"
	"time"
)

// LayeredCache checks memory first and falls back to disk
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get retrieves a value, promoting disk hits into memory
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Claim claims in memory first so concurrent callers in one process agree,
// then on disk so earlier runs are honoured
func (c *LayeredCache) Claim(key string, value []byte, ttl time.Duration) ([]byte, bool, error) {
	existing, claimed, err := c.memory.Claim(key, value, ttl)
	if err != nil || !claimed {
		return existing, false, err
	}

	existing, claimed, err = c.disk.Claim(key, value, ttl)
	if err != nil {
		_ = c.memory.Delete(key)
		return nil, false, err
	}
	if !claimed {
		_ = c.memory.Set(key, existing, ttl)
		return existing, false, nil
	}
	return nil, true, nil
}

// Delete removes a value from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	if err := c.disk.Delete(key); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes all values from both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
