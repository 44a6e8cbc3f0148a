package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// DefaultStockCeiling caps the purchasable quantity for products whose
// snapshot carries no stock count.
const DefaultStockCeiling = 10

// ProductSnapshot is the product state captured when a line item is
// created. It is deliberately stale: price and stock reflect the moment
// of adding, not the live catalog.
type ProductSnapshot struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	StockCount *int            `json:"stock_count,omitempty"`
	Category   string          `json:"category,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`
}

// StockCeiling returns the maximum purchasable quantity for this
// snapshot, falling back to DefaultStockCeiling when the snapshot
// carries no stock count.
func (s ProductSnapshot) StockCeiling() int {
	if s.StockCount == nil {
		return DefaultStockCeiling
	}
	return *s.StockCount
}

// LineItem is one entry in the cart: a product snapshot plus the
// requested quantity.
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	Product   ProductSnapshot `json:"product"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewLineItem creates a line item for the given snapshot and quantity
func NewLineItem(product ProductSnapshot, quantity int) LineItem {
	now := time.Now()
	return LineItem{
		ID:        uuid.New(),
		Product:   product,
		Quantity:  quantity,
		AddedAt:   now,
		UpdatedAt: now,
	}
}

// LineTotal returns unit price times quantity
func (l LineItem) LineTotal() valueobject.Money {
	return valueobject.NewMoneyUSD(l.Product.UnitPrice).MultiplyByInt(int64(l.Quantity))
}

// Valid reports whether a persisted line item is structurally sound.
// Restore drops invalid lines instead of failing the whole load.
func (l LineItem) Valid() bool {
	return l.ID != uuid.Nil && l.Product.SKU != "" && l.Quantity > 0
}
