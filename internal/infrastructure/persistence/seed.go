package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

type seedProduct struct {
	sku           string
	name          string
	description   string
	category      string
	price         string
	originalPrice string
	rating        string
	reviews       int
	imageURL      string
	badge         string
	stock         int
}

var seedProducts = []seedProduct{
	{
		sku:           "SKU-1001",
		name:          "Premium Wireless Headphones",
		description:   "Premium noise-cancelling wireless headphones with exceptional sound quality.",
		category:      "Electronics",
		price:         "299.99",
		originalPrice: "399.99",
		rating:        "4.5",
		reviews:       234,
		imageURL:      "https://via.placeholder.com/300x300/4F46E5/FFFFFF?text=Headphones",
		badge:         "best-seller",
		stock:         15,
	},
	{
		sku:           "SKU-1002",
		name:          "Smart Watch Pro",
		description:   "Advanced fitness tracking and health monitoring smartwatch.",
		category:      "Electronics",
		price:         "449.99",
		originalPrice: "599.99",
		rating:        "4.8",
		reviews:       512,
		imageURL:      "https://via.placeholder.com/300x300/7C3AED/FFFFFF?text=Smart+Watch",
		badge:         "new-arrival",
		stock:         8,
	},
	{
		sku:           "SKU-1003",
		name:          "Organic Cotton T-Shirt",
		description:   "Comfortable organic cotton t-shirt in various colors.",
		category:      "Clothing",
		price:         "29.99",
		originalPrice: "39.99",
		rating:        "4.2",
		reviews:       128,
		imageURL:      "https://via.placeholder.com/300x300/EC4899/FFFFFF?text=T-Shirt",
		stock:         50,
	},
	{
		sku:           "SKU-1004",
		name:          "Professional Laptop Backpack",
		description:   "Durable laptop backpack with multiple compartments and USB charging.",
		category:      "Accessories",
		price:         "79.99",
		originalPrice: "99.99",
		rating:        "4.6",
		reviews:       189,
		imageURL:      "https://via.placeholder.com/300x300/10B981/FFFFFF?text=Backpack",
		badge:         "limited-offer",
		stock:         25,
	},
	{
		sku:           "SKU-1005",
		name:          "4K Webcam",
		description:   "Ultra HD 4K webcam with auto-focus and noise reduction.",
		category:      "Electronics",
		price:         "129.99",
		originalPrice: "179.99",
		rating:        "4.4",
		reviews:       96,
		imageURL:      "https://via.placeholder.com/300x300/F59E0B/FFFFFF?text=Webcam",
		stock:         12,
	},
	{
		sku:           "SKU-1006",
		name:          "Yoga Mat Premium",
		description:   "Extra thick non-slip yoga mat with carrying strap.",
		category:      "Sports",
		price:         "49.99",
		originalPrice: "69.99",
		rating:        "4.7",
		reviews:       342,
		imageURL:      "https://via.placeholder.com/300x300/EF4444/FFFFFF?text=Yoga+Mat",
		stock:         30,
	},
}

// SeedCatalog populates the product catalog with the sample
// assortment. It is idempotent: products whose SKU already exists are
// left untouched.
func SeedCatalog(ctx context.Context, repo catalog.ProductRepository) error {
	for _, seed := range seedProducts {
		if _, err := repo.FindBySKU(ctx, seed.sku); err == nil {
			continue
		}

		price, err := valueobject.NewMoneyUSDFromString(seed.price)
		if err != nil {
			return fmt.Errorf("invalid seed price for %s: %w", seed.sku, err)
		}

		product, err := catalog.NewProduct(seed.sku, seed.name, seed.category, price, seed.stock)
		if err != nil {
			return fmt.Errorf("invalid seed product %s: %w", seed.sku, err)
		}
		product.Description = seed.description
		product.ImageURL = seed.imageURL
		product.Badge = seed.badge
		product.Reviews = seed.reviews

		if seed.originalPrice != "" {
			listPrice, err := valueobject.NewMoneyUSDFromString(seed.originalPrice)
			if err != nil {
				return fmt.Errorf("invalid seed list price for %s: %w", seed.sku, err)
			}
			if err := product.SetListPrice(listPrice); err != nil {
				return err
			}
		}
		if seed.rating != "" {
			rating, err := decimal.NewFromString(seed.rating)
			if err != nil {
				return fmt.Errorf("invalid seed rating for %s: %w", seed.sku, err)
			}
			if err := product.SetRating(rating, seed.reviews); err != nil {
				return err
			}
		}

		product.ClearDomainEvents()
		if err := repo.Save(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", seed.sku, err)
		}
	}
	return nil
}
