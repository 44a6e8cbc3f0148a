package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List returns a page of products matching the filter plus the total
// count of matches before pagination
func (r *GormProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, int64, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []catalog.Product
	if err := query.
		Order(orderClause(filter.Sort)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Categories returns each distinct category with its product count
func (r *GormProductRepository) Categories(ctx context.Context) ([]catalog.CategoryCount, error) {
	var counts []catalog.CategoryCount
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("category, COUNT(*) AS count").
		Where("category <> ''").
		Group("category").
		Order("category ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// Count returns the total number of products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// orderClause maps a sort order to a SQL ORDER BY clause. Unknown
// orders fall back to the featured ordering.
func orderClause(sort catalog.SortOrder) string {
	switch sort {
	case catalog.SortPriceAsc:
		return "price ASC"
	case catalog.SortPriceDesc:
		return "price DESC"
	case catalog.SortRating:
		return "rating DESC, reviews DESC"
	default:
		return "created_at ASC, id ASC"
	}
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
