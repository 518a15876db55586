package ratelimiter

import (
	"fmt"
	"time"
)

// Result is the outcome of a rate limit check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the checked request may proceed. A denied request
// reports a negative Remaining.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long a denied caller should wait. It is zero for allowed
// requests.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Config describes a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval.
type Config struct {
	Capacity       int
	RefillRate     int
	RefillInterval time.Duration
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// refill returns the token count after the intervals elapsed since
// lastRefill, and the new refill mark.
func (c Config) refill(tokens int, lastRefill, now time.Time) (int, time.Time) {
	intervals := int64(now.Sub(lastRefill) / c.RefillInterval)
	if intervals <= 0 {
		return tokens, lastRefill
	}
	// Capped so a long idle period cannot overflow.
	intervals = min(intervals, int64(c.Capacity/c.RefillRate+1))
	return min(tokens+int(intervals)*c.RefillRate, c.Capacity), now
}
