package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval.
type Config struct {
	Capacity       int           `env:"FORMS_RATE_LIMIT_CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"FORMS_RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"FORMS_RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// ttl is how long an untouched bucket must be kept before it is
// indistinguishable from a full one.
func (c Config) ttl() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals) * c.RefillInterval
}

// Result is the outcome of a Take.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the next token is added.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before retrying, or 0 when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}
