// Package pg wires PostgreSQL through pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config (PG_* environment variables) and
// retries until the server answers a ping. Migrate runs goose migrations from
// an fs.FS, usually an embed.FS compiled into the binary. WithTx wraps a unit
// of work in a transaction that is rolled back unless fn succeeds, and
// Healthcheck produces a probe usable by the readiness endpoint.
//
// Error helpers classify driver errors without leaking pgconn types to
// callers:
//
//	if pg.IsDuplicateKeyError(err) {
//		return ErrSubdomainTaken
//	}
package pg
