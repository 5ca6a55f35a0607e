package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/internal/store"
)

func TestMemoryGuard(t *testing.T) {
	t.Parallel()

	now := baseTime
	g := store.NewMemoryGuard(time.Hour, store.WithGuardClock(func() time.Time { return now }))
	ctx := context.Background()

	ok, err := g.Acquire(ctx, "contact:abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Acquire(ctx, "contact:abc")
	require.NoError(t, err)
	assert.False(t, ok, "held key is rejected")

	ok, err = g.Acquire(ctx, "realm_signup:abc")
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	require.NoError(t, g.Release(ctx, "contact:abc"))
	ok, err = g.Acquire(ctx, "contact:abc")
	require.NoError(t, err)
	assert.True(t, ok, "released key can be claimed again")

	now = now.Add(time.Hour)
	ok, err = g.Acquire(ctx, "realm_signup:abc")
	require.NoError(t, err)
	assert.True(t, ok, "expired key can be claimed again")
}

func TestMemoryGuard_NonPositiveTTLUsesDefault(t *testing.T) {
	t.Parallel()

	for _, ttl := range []time.Duration{0, -time.Minute} {
		now := baseTime
		g := store.NewMemoryGuard(ttl, store.WithGuardClock(func() time.Time { return now }))
		ctx := context.Background()

		ok, err := g.Acquire(ctx, "contact:abc")
		require.NoError(t, err)
		require.True(t, ok)

		now = now.Add(time.Hour)
		ok, err = g.Acquire(ctx, "contact:abc")
		require.NoError(t, err)
		assert.False(t, ok, "ttl %v: key must still be held", ttl)

		now = baseTime.Add(store.DefaultGuardTTL)
		ok, err = g.Acquire(ctx, "contact:abc")
		require.NoError(t, err)
		assert.True(t, ok, "ttl %v: key expires after the default ttl", ttl)
	}
}
