// Package ratelimiter provides token bucket rate limiting backed by process
// memory or Redis, plus HTTP middleware.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. A request takes one token; when the bucket is short the
// request is denied and the bucket is left as it was.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(bucket, keyByIP)).Post("/auth/login", login)
//
// Use NewRedisStore when several replicas must share limits. The refill and
// consume step runs as a single Lua script, so concurrent callers never
// overdraw a bucket.
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited response, and Retry-After on denials.
package ratelimiter
