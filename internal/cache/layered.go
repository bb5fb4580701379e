package cache

import "time"

// LayeredCache fronts a disk cache with a memory cache. Batch runs within
// one process hit the memory tier; reports built by earlier runs are served
// from disk and promoted.
type LayeredCache struct {
	hot  Cache
	cold Cache
}

// NewLayeredCache creates a layered cache. The memory tier sweeps expired
// entries every ten minutes.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		hot:  NewMemoryCache(memoryTTL, 10*time.Minute),
		cold: NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks the memory tier, then disk. Disk hits are promoted into memory
// under the memory tier's default TTL.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, ok := c.hot.Get(key); ok {
		return val, true
	}

	val, ok := c.cold.Get(key)
	if !ok {
		return nil, false
	}

	_ = c.hot.Set(key, val, 0)
	return val, true
}

// Set writes through to both tiers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.hot.Set(key, value, ttl); err != nil {
		return err
	}
	return c.cold.Set(key, value, ttl)
}

// Delete removes the key from both tiers
func (c *LayeredCache) Delete(key string) error {
	_ = c.hot.Delete(key)
	return c.cold.Delete(key)
}

// Clear empties both tiers
func (c *LayeredCache) Clear() error {
	_ = c.hot.Clear()
	return c.cold.Clear()
}
