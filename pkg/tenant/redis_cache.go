package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travelsuite/tenancy/pkg/logger"
)

const defaultRedisPrefix = "tenancy:tenant:"

// RedisCache shares tenant lookups between instances. Redis failures are
// logged and treated as cache misses so resolution falls through to the store.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	log    *slog.Logger
}

// NewRedisCache wraps client. An empty prefix selects "tenancy:tenant:".
func NewRedisCache(client redis.UniversalClient, prefix string, log *slog.Logger) *RedisCache {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if log == nil {
		log = logger.Discard()
	}
	return &RedisCache{client: client, prefix: prefix, log: log}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "tenant cache read failed", logger.Component("tenant.cache"), logger.Error(err))
		}
		return nil, false
	}

	var rec cachedTenant
	if err := json.Unmarshal(data, &rec); err != nil {
		c.log.WarnContext(ctx, "tenant cache entry corrupt", logger.Component("tenant.cache"), logger.Error(err))
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return nil, false
	}
	return rec.tenant(), true
}

func (c *RedisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(newCachedTenant(t))
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "tenant cache write failed", logger.Component("tenant.cache"), logger.Error(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.log.WarnContext(ctx, "tenant cache invalidation failed", logger.Component("tenant.cache"), logger.Error(err))
	}
}

// Close is a no-op; the client is owned by the caller.
func (c *RedisCache) Close() error { return nil }

// cachedTenant carries the fields Tenant hides from JSON.
type cachedTenant struct {
	Tenant
	Deleted bool `json:"deleted"`
}

func newCachedTenant(t *Tenant) cachedTenant {
	return cachedTenant{Tenant: *t, Deleted: t.Deleted}
}

func (c cachedTenant) tenant() *Tenant {
	t := c.Tenant
	t.Deleted = c.Deleted
	return &t
}
