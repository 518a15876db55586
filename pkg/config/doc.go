// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Two entry points exist:
//
//   - Load parses once per configuration type and serves later calls from a
//     process-wide cache. Use it for infrastructure settings shared by the
//     whole binary (database pool, redis, http server).
//   - Parse and ParseFromMap build a fresh value on every call. Use them for
//     values that are passed into components explicitly, so tests can build
//     several independent configurations side by side.
//
// Usage:
//
//	var db pg.Config
//	if err := config.Load(&db); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// Sentinel errors (ErrParsingConfig, ErrNilPointer, ErrConfigNotLoaded,
// ErrLoadingEnvFile) can be matched with errors.Is.
package config
