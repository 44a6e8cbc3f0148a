package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/shared"
)

// ProductResponse represents a product on listing and detail pages
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountPercent int             `json:"discount_percent"`
	Rating          decimal.Decimal `json:"rating"`
	Reviews         int             `json:"reviews"`
	ImageURL        string          `json:"image_url"`
	Badge           string          `json:"badge"`
	StockCount      int             `json:"stock_count"`
	InStock         bool            `json:"in_stock"`
}

// ProductPageResponse is one page of a product listing
type ProductPageResponse = shared.Paginated[ProductResponse]

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent(),
		Rating:          p.Rating,
		Reviews:         p.Reviews,
		ImageURL:        p.ImageURL,
		Badge:           p.Badge,
		StockCount:      p.StockCount,
		InStock:         p.InStock(),
	}
}
