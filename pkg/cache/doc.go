// Package cache provides a generic in-process LRU cache with per-entry
// expiry.
//
//	lru := cache.NewLRU[string, *tenant.Tenant](1000)
//	lru.Put("sub:acme", t, 5*time.Minute)
//	t, ok := lru.Get("sub:acme")
//
// Expired entries are dropped when read. Long-lived caches should also call
// RemoveExpired periodically so entries that are never read again do not
// hold memory until evicted.
package cache
