package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/internal/store"
	"github.com/cornerstone-church/site/internal/submission"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newSubmission(i int) submission.Submission {
	payload, err := submission.NormalizePayload(map[string]any{
		"name":         fmt.Sprintf("Person %d", i),
		"email":        "p@example.com",
		"partySize":    3,
		"availability": []string{"Monday", "Thursday"},
	})
	if err != nil {
		panic(err)
	}
	return submission.Submission{
		ID:             fmt.Sprintf("sub-%03d", i),
		FormType:       submission.FormTableGroup,
		Payload:        payload,
		CreatedAt:      baseTime.Add(time.Duration(i)*time.Second + 123*time.Millisecond),
		IdempotencyKey: fmt.Sprintf("key-%d", i),
	}
}

// runStoreContract exercises the behaviour every submission.Store must share.
func runStoreContract(t *testing.T, s submission.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty category", func(t *testing.T) {
		got, err := s.List(ctx, "overflow_signup")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("sequential appends keep order", func(t *testing.T) {
		for i := range 5 {
			stored, err := s.Append(ctx, "contact", newSubmission(i))
			require.NoError(t, err)

			all, err := s.List(ctx, "contact")
			require.NoError(t, err)
			require.Len(t, all, i+1)
			assert.Equal(t, stored, all[len(all)-1])
			assert.Equal(t, newSubmission(i), stored)
		}

		all, err := s.List(ctx, "contact")
		require.NoError(t, err)
		for i, sub := range all {
			assert.Equal(t, fmt.Sprintf("sub-%03d", i), sub.ID)
		}
	})

	t.Run("categories are separate", func(t *testing.T) {
		_, err := s.Append(ctx, "realm_signup", newSubmission(100))
		require.NoError(t, err)

		realm, err := s.List(ctx, "realm_signup")
		require.NoError(t, err)
		assert.Len(t, realm, 1)

		contact, err := s.List(ctx, "contact")
		require.NoError(t, err)
		assert.Len(t, contact, 5)
	})

	t.Run("concurrent appends are not lost", func(t *testing.T) {
		const n = 20
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.Append(ctx, "table_group_signup", newSubmission(200+i))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		all, err := s.List(ctx, "table_group_signup")
		require.NoError(t, err)
		assert.Len(t, all, n)
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := s.Append(ctx, "../etc", newSubmission(1))
		assert.ErrorIs(t, err, store.ErrInvalidCategory)

		_, err = s.List(ctx, "")
		assert.ErrorIs(t, err, store.ErrInvalidCategory)
	})
}

func TestMemory(t *testing.T) {
	t.Parallel()
	runStoreContract(t, store.NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	_, err := m.Append(context.Background(), "contact", newSubmission(1))
	require.NoError(t, err)

	got, err := m.List(context.Background(), "contact")
	require.NoError(t, err)
	got[0].Payload["name"] = "changed"

	again, err := m.List(context.Background(), "contact")
	require.NoError(t, err)
	assert.Equal(t, "Person 1", again[0].Payload["name"])
}

func TestMemory_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.NewMemory().Append(ctx, "contact", newSubmission(1))
	assert.ErrorIs(t, err, context.Canceled)
}
