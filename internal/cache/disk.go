package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskCache persists entries as files so duplicate fingerprints are
// recognised across separate runs
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a new disk cache
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the disk cache, removing it when expired
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value; ttl 0 uses the cache default
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	f, err := c.create(key, false)
	if err != nil {
		return err
	}
	return c.write(f, value, ttl)
}

// Claim creates the entry exclusively. Expired entries are replaced.
func (c *DiskCache) Claim(key string, value []byte, ttl time.Duration) ([]byte, bool, error) {
	if existing, found := c.Get(key); found {
		return existing, false, nil
	}

	f, err := c.create(key, true)
	if errors.Is(err, os.ErrExist) {
		existing, _ := c.Get(key)
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := c.write(f, value, ttl); err != nil {
		return nil, false, err
	}
	return nil, true, nil
}

// Delete removes a value from the disk cache
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes all cached files
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) create(key string, exclusive bool) (*os.File, error) {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(c.path(key), flags, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open cache file: %w", err)
	}
	return f, nil
}

func (c *DiskCache) write(f *os.File, value []byte, ttl time.Duration) (err error) {
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close cache file: %w", closeErr)
		}
	}()

	if ttl <= 0 {
		ttl = c.ttl
	}
	entry := diskEntry{Data: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// path maps a key to a file name; ':' is not portable in file names
func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, strings.ReplaceAll(key, ":", "_")+".cache")
}
