package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/promotion"
	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/wishlist"
	"github.com/webmart/storefront/internal/infrastructure/storage"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLineItem(sku string, quantity int) cart.LineItem {
	stock := 10
	return cart.NewLineItem(cart.ProductSnapshot{
		SKU:        sku,
		Name:       "Product " + sku,
		UnitPrice:  mustDecimal("25.00"),
		StockCount: &stock,
	}, quantity)
}

func TestKVCartRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round-trip", func(t *testing.T) {
		repo := NewKVCartRepository(storage.NewMemoryStore())
		items := []cart.LineItem{testLineItem("SKU-1", 2), testLineItem("SKU-2", 1)}

		require.NoError(t, repo.Save(ctx, items))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, items[0].ID, loaded[0].ID)
		assert.Equal(t, "SKU-1", loaded[0].Product.SKU)
		assert.Equal(t, 2, loaded[0].Quantity)
		require.NotNil(t, loaded[0].Product.StockCount)
		assert.Equal(t, 10, *loaded[0].Product.StockCount)
	})

	t.Run("missing document loads as empty cart", func(t *testing.T) {
		repo := NewKVCartRepository(storage.NewMemoryStore())

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("clear removes the document", func(t *testing.T) {
		repo := NewKVCartRepository(storage.NewMemoryStore())
		require.NoError(t, repo.Save(ctx, []cart.LineItem{testLineItem("SKU-1", 1)}))

		require.NoError(t, repo.Clear(ctx))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("quota rejection maps to cart error", func(t *testing.T) {
		repo := NewKVCartRepository(storage.NewMemoryStore(storage.WithMaxBytes(50)))

		err := repo.Save(ctx, []cart.LineItem{testLineItem("SKU-1", 1)})
		assert.ErrorIs(t, err, cart.ErrStorageQuota)
	})

	t.Run("works against the database store", func(t *testing.T) {
		repo := NewKVCartRepository(NewGormKVStore(newTestDatabase(t).DB, 0))
		items := []cart.LineItem{testLineItem("SKU-1", 3)}

		require.NoError(t, repo.Save(ctx, items))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, 3, loaded[0].Quantity)
	})
}

func TestKVPromoRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round-trip", func(t *testing.T) {
		repo := NewKVPromoRepository(storage.NewMemoryStore())

		applied, err := promotion.Apply("SAVE20")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, applied))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", loaded.Code)
		assert.Equal(t, "20% off", loaded.Description)
		assert.WithinDuration(t, applied.AppliedAt, loaded.AppliedAt, time.Second)
	})

	t.Run("nothing stored returns not found", func(t *testing.T) {
		repo := NewKVPromoRepository(storage.NewMemoryStore())

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stale code no longer in the table returns not found", func(t *testing.T) {
		store := storage.NewMemoryStore()
		repo := NewKVPromoRepository(store)
		require.NoError(t, store.Set(ctx, storage.KeyPromo, `{"code":"RETIRED50","applied_at":"2024-01-01T00:00:00Z"}`))

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("clear removes the promotion", func(t *testing.T) {
		repo := NewKVPromoRepository(storage.NewMemoryStore())
		applied, err := promotion.Apply("FREESHIP")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, applied))

		require.NoError(t, repo.Clear(ctx))

		_, err = repo.Load(ctx)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestKVWishlistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round-trip", func(t *testing.T) {
		repo := NewKVWishlistRepository(storage.NewMemoryStore())
		entries := []wishlist.Entry{
			{SKU: "SKU-1", Name: "Headphones", Price: mustDecimal("299.99"), SavedAt: time.Now()},
			{SKU: "SKU-2", Name: "Watch", Price: mustDecimal("449.99"), SavedAt: time.Now()},
		}

		require.NoError(t, repo.Save(ctx, entries))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "SKU-1", loaded[0].SKU)
		assert.True(t, loaded[1].Price.Equal(mustDecimal("449.99")))
	})

	t.Run("missing document loads as empty wishlist", func(t *testing.T) {
		repo := NewKVWishlistRepository(storage.NewMemoryStore())

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("clear removes the document", func(t *testing.T) {
		repo := NewKVWishlistRepository(storage.NewMemoryStore())
		require.NoError(t, repo.Save(ctx, []wishlist.Entry{{SKU: "SKU-1", Name: "Headphones"}}))

		require.NoError(t, repo.Clear(ctx))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}
