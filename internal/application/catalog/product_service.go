package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/shared"
)

// ProductService serves the product browsing operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns one page of products matching the filter
func (s *ProductService) List(ctx context.Context, filter catalog.ListFilter) (*ProductPageResponse, error) {
	filter.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a single product by id
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU returns a single product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Categories returns every category with its product count
func (s *ProductService) Categories(ctx context.Context) ([]catalog.CategoryCount, error) {
	return s.productRepo.Categories(ctx)
}
