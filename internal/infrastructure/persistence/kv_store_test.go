package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/infrastructure/storage"
)

func TestGormKVStore(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get round-trips", func(t *testing.T) {
		store := NewGormKVStore(newTestDatabase(t).DB, 0)

		require.NoError(t, store.Set(ctx, "greeting", "hello"))
		value, err := store.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "hello", value)
	})

	t.Run("get of missing key returns not found", func(t *testing.T) {
		store := NewGormKVStore(newTestDatabase(t).DB, 0)

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("set overwrites previous value", func(t *testing.T) {
		store := NewGormKVStore(newTestDatabase(t).DB, 0)

		require.NoError(t, store.Set(ctx, "key", "first"))
		require.NoError(t, store.Set(ctx, "key", "second"))

		value, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		store := NewGormKVStore(newTestDatabase(t).DB, 0)

		require.NoError(t, store.Set(ctx, "key", "value"))
		require.NoError(t, store.Delete(ctx, "key"))

		_, err := store.Get(ctx, "key")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete of missing key is a no-op", func(t *testing.T) {
		store := NewGormKVStore(newTestDatabase(t).DB, 0)
		assert.NoError(t, store.Delete(ctx, "missing"))
	})

	t.Run("write over quota is rejected", func(t *testing.T) {
		store := NewGormKVStore(newTestDatabase(t).DB, 10)

		require.NoError(t, store.Set(ctx, "a", "12345"))
		err := store.Set(ctx, "b", "1234567")
		assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

		// rejected write leaves existing data intact
		value, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "12345", value)
	})

	t.Run("overwriting a key frees its old bytes", func(t *testing.T) {
		store := NewGormKVStore(newTestDatabase(t).DB, 10)

		require.NoError(t, store.Set(ctx, "a", "123456789"))
		assert.NoError(t, store.Set(ctx, "a", "abcdefghij"))
	})
}
