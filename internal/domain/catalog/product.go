package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// Product represents a sellable product in the storefront catalog.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseAggregateRoot
	SKU           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Category      string          `gorm:"type:varchar(100);index"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // pre-discount list price, zero when absent
	Rating        decimal.Decimal `gorm:"type:decimal(4,2);not null;default:0"`
	Reviews       int             `gorm:"not null;default:0"`
	ImageURL      string          `gorm:"type:varchar(500)"`
	Badge         string          `gorm:"type:varchar(50)"`
	StockCount    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(sku, name, category string, price valueobject.Money, stockCount int) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stockCount < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock count cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Category:          category,
		Price:             price.Amount(),
		OriginalPrice:     decimal.Zero,
		Rating:            decimal.Zero,
		StockCount:        stockCount,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// SetListPrice records the pre-discount list price used for badge rendering
func (p *Product) SetListPrice(original valueobject.Money) error {
	if original.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	p.OriginalPrice = original.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// SetRating sets the display rating and review count
func (p *Product) SetRating(rating decimal.Decimal, reviews int) error {
	if rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(5)) {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	if reviews < 0 {
		return shared.NewDomainError("INVALID_RATING", "Review count cannot be negative")
	}
	p.Rating = rating
	p.Reviews = reviews
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	old := p.Price
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()

	if !old.Equal(p.Price) {
		p.AddDomainEvent(NewProductPriceChangedEvent(p, old))
	}
	return nil
}

// SetStock replaces the available stock count
func (p *Product) SetStock(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock count cannot be negative")
	}

	old := p.StockCount
	p.StockCount = count
	p.UpdatedAt = time.Now()

	if old != count {
		p.AddDomainEvent(NewProductStockAdjustedEvent(p, old))
	}
	return nil
}

// InStock reports whether any units are available
func (p *Product) InStock() bool {
	return p.StockCount > 0
}

// DiscountPercent returns the rounded percentage off the list price,
// or zero when no list price is set
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice.LessThanOrEqual(decimal.Zero) || p.OriginalPrice.LessThanOrEqual(p.Price) {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

func validateSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "Product SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !isSKURune(r) {
			return shared.NewDomainError("INVALID_SKU", "Product SKU can only contain letters, digits, hyphen and underscore")
		}
	}
	return nil
}

func isSKURune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
