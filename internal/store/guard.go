package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultGuardTTL applies when a guard is built with a TTL of zero or less.
// Keys must outlive any client retry, so they never expire immediately and
// never live forever.
const DefaultGuardTTL = 24 * time.Hour

func guardTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultGuardTTL
	}
	return ttl
}

// MemoryGuard holds idempotency keys in process memory until they expire.
type MemoryGuard struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	keys map[string]time.Time
}

// MemoryGuardOption configures a MemoryGuard.
type MemoryGuardOption func(*MemoryGuard)

// WithGuardClock sets the clock used for expiry.
func WithGuardClock(now func() time.Time) MemoryGuardOption {
	return func(g *MemoryGuard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewMemoryGuard creates a guard that holds each key for ttl, or for
// DefaultGuardTTL when ttl is not positive.
func NewMemoryGuard(ttl time.Duration, opts ...MemoryGuardOption) *MemoryGuard {
	g := &MemoryGuard{
		ttl:  guardTTL(ttl),
		now:  time.Now,
		keys: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Acquire claims key and reports false when it is already held. Expired
// keys are swept on each call.
func (g *MemoryGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.keys {
		if !now.Before(exp) {
			delete(g.keys, k)
		}
	}

	if _, held := g.keys[key]; held {
		return false, nil
	}
	g.keys[key] = now.Add(g.ttl)
	return true, nil
}

// Release frees key. Releasing a key that is not held is a no-op.
func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.keys, key)
	g.mu.Unlock()
	return nil
}

// RedisGuard holds idempotency keys with SET NX and an expiry, so every
// instance sharing the Redis sees the same keys.
type RedisGuard struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisGuard stores keys under prefix ("idempotency:" when empty). A ttl
// that is not positive falls back to DefaultGuardTTL.
func NewRedisGuard(client redis.Cmdable, prefix string, ttl time.Duration) *RedisGuard {
	if prefix == "" {
		prefix = "idempotency:"
	}
	return &RedisGuard{client: client, prefix: prefix, ttl: guardTTL(ttl)}
}

// Acquire claims key with SET NX and reports false when it is already held.
func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+key, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", key, err)
	}
	return ok, nil
}

// Release deletes key.
func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}
