package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Store keeps bucket state. Take must refill and consume atomically.
type Store interface {
	Take(ctx context.Context, key string, n int, cfg Config) (Result, error)
	Reset(ctx context.Context, key string) error
}

// Bucket is a token bucket limiter backed by a Store.
type Bucket struct {
	store  Store
	config Config
}

func NewBucket(store Store, config Config) (*Bucket, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for key. A denied request consumes nothing.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.store.Take(ctx, key, n, b.config)
}

func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

// refill advances a bucket by whole intervals since last, returning the new
// token count and refill mark. Shared by both stores so they agree exactly.
func refill(tokens int, last, now time.Time, cfg Config) (int, time.Time) {
	if now.Before(last) {
		return tokens, last
	}
	intervals := int64(now.Sub(last) / cfg.RefillInterval)
	if intervals <= 0 {
		return tokens, last
	}
	// Past this many intervals the bucket is full anyway.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	added := min(intervals, maxIntervals) * int64(cfg.RefillRate)
	return int(min(int64(tokens)+added, int64(cfg.Capacity))), last.Add(time.Duration(intervals) * cfg.RefillInterval)
}
