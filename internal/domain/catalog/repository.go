package catalog

import (
	"context"

	"github.com/google/uuid"
)

// SortOrder controls listing order
type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRating    SortOrder = "rating"
)

// DefaultPageSize is the number of products shown per listing page
const DefaultPageSize = 12

// ListFilter narrows and orders a product listing
type ListFilter struct {
	Category string
	Search   string // case-insensitive match against name and description
	Sort     SortOrder
	Page     int
	PageSize int
}

// DefaultListFilter returns a filter with default values
func DefaultListFilter() ListFilter {
	return ListFilter{
		Sort:     SortFeatured,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Normalize fills zero values with defaults
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.Sort == "" {
		f.Sort = SortFeatured
	}
}

// CategoryCount summarizes a category for listing pages
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, int64, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
	Count(ctx context.Context) (int64, error)
}
