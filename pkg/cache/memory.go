package cache

import (
	"context"
	"sync"
	"time"
)

type item struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a process-local Cache used when Redis is not configured.
// Entries are dropped lazily on read and by an occasional sweep on write.
type MemoryCache struct {
	mu     sync.Mutex
	items  map[string]item
	writes uint64
	now    func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]item),
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return "", nil
	}
	if c.expired(it) {
		delete(c.items, key)
		return "", nil
	}

	return it.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := item{value: value}
	if ttl > 0 {
		it.expiresAt = c.now().Add(ttl)
	}
	c.items[key] = it

	c.writes++
	if c.writes%256 == 0 {
		for k, v := range c.items {
			if c.expired(v) {
				delete(c.items, k)
			}
		}
	}

	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

func (c *MemoryCache) Ping(context.Context) error {
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

func (c *MemoryCache) expired(it item) bool {
	return !it.expiresAt.IsZero() && !c.now().Before(it.expiresAt)
}
