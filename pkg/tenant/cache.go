package tenant

import (
	"context"
	"sync"
	"time"

	"github.com/travelsuite/tenancy/pkg/cache"
)

// Cache stores positive tenant lookups. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Close() error
}

// DefaultCacheSize bounds the in-memory cache.
const DefaultCacheSize = 1000

// inMemoryCache is an expiring LRU with a background sweeper.
type inMemoryCache struct {
	lru *cache.LRU[string, *Tenant]

	mu     sync.Mutex
	stop   chan struct{}
	done   chan struct{}
	closed bool
}

// NewInMemoryCache returns a process-local cache holding at most maxSize
// tenants. A non-positive size selects DefaultCacheSize.
func NewInMemoryCache(maxSize int) Cache {
	return newInMemoryCache(maxSize, time.Minute, time.Now)
}

func newInMemoryCache(maxSize int, sweepEvery time.Duration, now func() time.Time) *inMemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &inMemoryCache{
		lru:  cache.NewLRU[string, *Tenant](maxSize, cache.WithClock(now)),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.sweep(sweepEvery)
	return c
}

func (c *inMemoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	t, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

func (c *inMemoryCache) Set(_ context.Context, key string, t *Tenant, ttl time.Duration) {
	if t == nil {
		return
	}
	c.lru.Put(key, t.Clone(), ttl)
}

func (c *inMemoryCache) Delete(_ context.Context, keys ...string) {
	c.lru.Remove(keys...)
}

// Close stops the sweeper. It is safe to call more than once.
func (c *inMemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

func (c *inMemoryCache) len() int { return c.lru.Len() }

func (c *inMemoryCache) removeExpired() { c.lru.RemoveExpired() }

func (c *inMemoryCache) sweep(every time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

// noOpCache disables caching.
type noOpCache struct{}

func NewNoOpCache() Cache { return noOpCache{} }

func (noOpCache) Get(context.Context, string) (*Tenant, bool)         { return nil, false }
func (noOpCache) Set(context.Context, string, *Tenant, time.Duration) {}
func (noOpCache) Delete(context.Context, ...string)                   {}
func (noOpCache) Close() error                                        { return nil }

func cacheKeyID(id string) string { return "id:" + id }

func cacheKeySubdomain(sub string) string { return "sub:" + sub }

func cacheKeyDomain(domain string) string { return "dom:" + domain }

func cacheKeysFor(t *Tenant) []string {
	if t == nil {
		return nil
	}
	keys := []string{cacheKeyID(t.ID), cacheKeySubdomain(t.Subdomain)}
	if t.Domain != "" {
		keys = append(keys, cacheKeyDomain(t.Domain))
	}
	return keys
}
