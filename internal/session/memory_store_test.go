package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	sess := Session{
		ID:        "s1",
		UserID:    "u1",
		Username:  "alice",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	t.Run("save and get", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("missing session", func(t *testing.T) {
		store := NewMemoryStore()

		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete revokes", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, sess))
		require.NoError(t, store.Delete(ctx, "s1"))

		_, err := store.Get(ctx, "s1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		store := NewMemoryStore()
		expired := sess
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, store.Save(ctx, expired))

		_, err := store.Get(ctx, "s1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleting a missing session is fine", func(t *testing.T) {
		store := NewMemoryStore()
		assert.NoError(t, store.Delete(ctx, "nope"))
	})
}
