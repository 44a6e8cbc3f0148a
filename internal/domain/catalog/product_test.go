package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("HDX-100", "Premium Wireless Headphones", "Electronics", valueobject.NewMoneyUSDFromFloat(299.99), 15)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "HDX-100", product.SKU)
		assert.Equal(t, "Premium Wireless Headphones", product.Name)
		assert.Equal(t, "Electronics", product.Category)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(299.99)))
		assert.Equal(t, 15, product.StockCount)
		assert.True(t, product.InStock())
		assert.NotEmpty(t, product.ID)
	})

	t.Run("converts sku to uppercase", func(t *testing.T) {
		product, err := NewProduct("hdx-100", "Headphones", "Electronics", valueobject.ZeroUSD(), 1)
		require.NoError(t, err)
		assert.Equal(t, "HDX-100", product.SKU)
	})

	t.Run("publishes created event", func(t *testing.T) {
		product, err := NewProduct("HDX-100", "Headphones", "Electronics", valueobject.NewMoneyUSDFromFloat(10), 1)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("fails with empty sku", func(t *testing.T) {
		_, err := NewProduct("", "Headphones", "Electronics", valueobject.ZeroUSD(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with invalid sku characters", func(t *testing.T) {
		_, err := NewProduct("HDX 100!", "Headphones", "Electronics", valueobject.ZeroUSD(), 1)
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("HDX-100", "  ", "Electronics", valueobject.ZeroUSD(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct("HDX-100", "Headphones", "Electronics", valueobject.ZeroUSD(), -1)
		require.Error(t, err)
	})
}

func TestProduct_SetStock(t *testing.T) {
	product, err := NewProduct("HDX-100", "Headphones", "Electronics", valueobject.NewMoneyUSDFromFloat(10), 5)
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("adjusts stock and records event", func(t *testing.T) {
		require.NoError(t, product.SetStock(2))
		assert.Equal(t, 2, product.StockCount)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		adjusted, ok := events[0].(*ProductStockAdjustedEvent)
		require.True(t, ok)
		assert.Equal(t, 5, adjusted.OldStock)
		assert.Equal(t, 2, adjusted.NewStock)
	})

	t.Run("no event when stock is unchanged", func(t *testing.T) {
		product.ClearDomainEvents()
		require.NoError(t, product.SetStock(2))
		assert.Empty(t, product.GetDomainEvents())
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		err := product.SetStock(-3)
		require.Error(t, err)
		assert.Equal(t, 2, product.StockCount)
	})

	t.Run("zero stock means out of stock", func(t *testing.T) {
		require.NoError(t, product.SetStock(0))
		assert.False(t, product.InStock())
	})
}

func TestProduct_DiscountPercent(t *testing.T) {
	product, err := NewProduct("HDX-100", "Headphones", "Electronics", valueobject.NewMoneyUSDFromFloat(299.99), 5)
	require.NoError(t, err)

	t.Run("zero without list price", func(t *testing.T) {
		assert.Equal(t, 0, product.DiscountPercent())
	})

	t.Run("computed from list price", func(t *testing.T) {
		require.NoError(t, product.SetListPrice(valueobject.NewMoneyUSDFromFloat(399.99)))
		assert.Equal(t, 25, product.DiscountPercent())
	})

	t.Run("zero when list price does not exceed price", func(t *testing.T) {
		require.NoError(t, product.SetListPrice(valueobject.NewMoneyUSDFromFloat(299.99)))
		assert.Equal(t, 0, product.DiscountPercent())
	})
}

func TestProduct_SetRating(t *testing.T) {
	product, err := NewProduct("HDX-100", "Headphones", "Electronics", valueobject.NewMoneyUSDFromFloat(10), 5)
	require.NoError(t, err)

	require.NoError(t, product.SetRating(decimal.NewFromFloat(4.5), 234))
	assert.True(t, product.Rating.Equal(decimal.NewFromFloat(4.5)))
	assert.Equal(t, 234, product.Reviews)

	require.Error(t, product.SetRating(decimal.NewFromFloat(5.1), 1))
	require.Error(t, product.SetRating(decimal.NewFromFloat(4.0), -1))
}
