package cache

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey(`{"reportId":null}`)
	b := CacheKey(`{"reportId":null}`)
	c := CacheKey(`{"reportId":"MB-1"}`)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "blueprint:v1:"))
	assert.Len(t, a, len("blueprint:v1:")+64)
}

func TestMemoryCache_ClaimOnce(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	existing, claimed, err := c.Claim("k", []byte("first.json"), 0)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Nil(t, existing)

	existing, claimed, err = c.Claim("k", []byte("second.json"), 0)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, []byte("first.json"), existing)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_ConcurrentClaim(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, claimed, err := c.Claim("same", []byte("v"), 0)
			assert.NoError(t, err)
			if claimed {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Set("b", []byte("2"), 0))

	require.NoError(t, c.Delete("a"))
	_, found := c.Get("a")
	assert.False(t, found)

	require.NoError(t, c.Clear())
	_, found = c.Get("b")
	assert.False(t, found)
}

func TestDiskCache_RoundTripAndClaim(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := CacheKey("fingerprint")

	_, found := c.Get(key)
	assert.False(t, found)

	_, claimed, err := c.Claim(key, []byte("a.json"), 0)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A fresh instance over the same directory sees the entry
	other := NewDiskCache(dir, time.Hour)
	existing, claimed, err := other.Claim(key, []byte("b.json"), 0)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, []byte("a.json"), existing)
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	require.NoError(t, c.Set("k", []byte("old"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get("k")
	assert.False(t, found)

	_, claimed, err := c.Claim("k", []byte("new"), 0)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestLayeredCache_ClaimAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	key := CacheKey("fp")

	first := New(time.Hour, dir)
	_, claimed, err := first.Claim(key, []byte("run-1.json"), 0)
	require.NoError(t, err)
	assert.True(t, claimed)

	second := New(time.Hour, dir)
	existing, claimed, err := second.Claim(key, []byte("run-2.json"), 0)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, []byte("run-1.json"), existing)

	// Promoted into memory
	val, found := second.Get(key)
	assert.True(t, found)
	assert.Equal(t, []byte("run-1.json"), val)

	require.NoError(t, second.Delete(key))
	require.NoError(t, second.Delete(key), "deleting a missing key is not an error")
	require.NoError(t, second.Clear())
}

func TestNew_MemoryOnly(t *testing.T) {
	_, ok := New(time.Minute, "").(*MemoryCache)
	assert.True(t, ok)
}
