// Package redis connects to Redis with go-redis/v9 and exposes a health probe.
//
// The tenant cache uses the client returned by Connect when REDIS_URL is set.
package redis
