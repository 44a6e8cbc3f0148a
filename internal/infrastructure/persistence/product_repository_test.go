package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

func newSeededProductRepository(t *testing.T) *GormProductRepository {
	t.Helper()

	repo := NewGormProductRepository(newTestDatabase(t).DB)
	require.NoError(t, SeedCatalog(context.Background(), repo))
	return repo
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	ctx := context.Background()
	repo := newSeededProductRepository(t)

	t.Run("finds seeded product", func(t *testing.T) {
		product, err := repo.FindBySKU(ctx, "SKU-1001")
		require.NoError(t, err)
		assert.Equal(t, "Premium Wireless Headphones", product.Name)
		assert.Equal(t, "299.99", product.Price.StringFixed(2))
		assert.Equal(t, 15, product.StockCount)
	})

	t.Run("normalizes lookup sku", func(t *testing.T) {
		product, err := repo.FindBySKU(ctx, "  sku-1003 ")
		require.NoError(t, err)
		assert.Equal(t, "Organic Cotton T-Shirt", product.Name)
	})

	t.Run("unknown sku returns not found", func(t *testing.T) {
		_, err := repo.FindBySKU(ctx, "SKU-9999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := newSeededProductRepository(t)

	saved, err := repo.FindBySKU(ctx, "SKU-1002")
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, saved.GetID())
	require.NoError(t, err)
	assert.Equal(t, "Smart Watch Pro", found.Name)
}

func TestGormProductRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := newSeededProductRepository(t)

	t.Run("lists everything by default", func(t *testing.T) {
		products, total, err := repo.List(ctx, catalog.DefaultListFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 6, total)
		assert.Len(t, products, 6)
	})

	t.Run("filters by category", func(t *testing.T) {
		filter := catalog.DefaultListFilter()
		filter.Category = "Electronics"

		products, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		for _, p := range products {
			assert.Equal(t, "Electronics", p.Category)
		}
	})

	t.Run("search matches name and description case-insensitively", func(t *testing.T) {
		filter := catalog.DefaultListFilter()
		filter.Search = "WIRELESS"

		_, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		filter.Search = "non-slip"
		products, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, "Yoga Mat Premium", products[0].Name)
	})

	t.Run("sorts by price ascending", func(t *testing.T) {
		filter := catalog.DefaultListFilter()
		filter.Sort = catalog.SortPriceAsc

		products, _, err := repo.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 6)
		assert.Equal(t, "Organic Cotton T-Shirt", products[0].Name)
		assert.Equal(t, "Smart Watch Pro", products[5].Name)
	})

	t.Run("sorts by rating descending", func(t *testing.T) {
		filter := catalog.DefaultListFilter()
		filter.Sort = catalog.SortRating

		products, _, err := repo.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 6)
		assert.Equal(t, "Smart Watch Pro", products[0].Name)
	})

	t.Run("paginates with total before pagination", func(t *testing.T) {
		filter := catalog.DefaultListFilter()
		filter.PageSize = 4
		filter.Page = 2

		products, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 6, total)
		assert.Len(t, products, 2)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		filter := catalog.DefaultListFilter()
		filter.Page = 10

		products, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 6, total)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_Categories(t *testing.T) {
	repo := newSeededProductRepository(t)

	counts, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []catalog.CategoryCount{
		{Category: "Accessories", Count: 1},
		{Category: "Clothing", Count: 1},
		{Category: "Electronics", Count: 3},
		{Category: "Sports", Count: 1},
	}, counts)
}

func TestGormProductRepository_Save(t *testing.T) {
	ctx := context.Background()
	repo := newSeededProductRepository(t)

	price, err := valueobject.NewMoneyUSDFromString("19.99")
	require.NoError(t, err)
	product, err := catalog.NewProduct("SKU-2001", "Desk Lamp", "Home", price, 5)
	require.NoError(t, err)
	product.ClearDomainEvents()

	require.NoError(t, repo.Save(ctx, product))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 7, count)

	// update round-trips through the same row
	product.StockCount = 3
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindBySKU(ctx, "SKU-2001")
	require.NoError(t, err)
	assert.Equal(t, 3, found.StockCount)
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newSeededProductRepository(t)

	require.NoError(t, SeedCatalog(ctx, repo))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)
}
