package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/shared"
)

// DefaultEvictionBatchSize is how many of the oldest lines are dropped
// when persisting the cart hits the storage quota.
const DefaultEvictionBatchSize = 10

// Config tunes the cart service
type Config struct {
	MaxItems          int
	EvictionBatchSize int
	Pricing           cart.PricingPolicy
}

// DefaultConfig returns the standard cart configuration
func DefaultConfig() Config {
	return Config{
		MaxItems:          cart.DefaultMaxItems,
		EvictionBatchSize: DefaultEvictionBatchSize,
		Pricing:           cart.DefaultPricingPolicy(),
	}
}

// Service owns the shopper's cart state. All mutation goes through its
// methods; every mutation is persisted best-effort before its domain
// events are published.
type Service struct {
	mu          sync.Mutex
	cart        *cart.Cart
	repo        cart.Repository
	productRepo catalog.ProductRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
	config      Config
}

// NewService creates a cart service and hydrates the cart from the
// repository. A load failure is not fatal; the service starts with an
// empty cart, matching a first visit.
func NewService(
	ctx context.Context,
	repo cart.Repository,
	productRepo catalog.ProductRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
	config Config,
) *Service {
	s := &Service{
		repo:        repo,
		productRepo: productRepo,
		eventBus:    eventBus,
		logger:      logger,
		config:      config,
	}

	items, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("failed to load saved cart, starting empty", zap.Error(err))
		items = nil
	}
	s.cart = cart.NewCartFromItems(items, config.MaxItems, config.Pricing)
	return s
}

// AddProduct looks the product up and adds the requested quantity
func (s *Service) AddProduct(ctx context.Context, sku string, quantity int) (*cart.LineItem, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.AddItem(snapshotOf(product), quantity)
	if err != nil {
		return nil, err
	}
	if err := s.finishMutation(ctx); err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveItem deletes a line by id
func (s *Service) RemoveItem(ctx context.Context, id uuid.UUID) (*cart.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.cart.RemoveItem(id)
	if err != nil {
		return nil, err
	}
	if err := s.finishMutation(ctx); err != nil {
		return nil, err
	}
	return removed, nil
}

// UpdateQuantity sets a line's quantity
func (s *Service) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.UpdateItemQuantity(id, quantity); err != nil {
		return err
	}
	return s.finishMutation(ctx)
}

// Clear empties the cart and returns the number of removed lines
func (s *Service) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := s.cart.Clear()
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear saved cart", zap.Error(err))
	}
	s.publishEvents(ctx)
	return cleared, nil
}

// Items returns a copy of the cart lines
func (s *Service) Items() []cart.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// ItemCount returns the total quantity across all lines
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Summary returns the cart totals for display
func (s *Service) Summary() cart.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary()
}

// Statistics returns aggregate figures about the cart contents
func (s *Service) Statistics() cart.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Statistics()
}

// Export serializes the cart for download
func (s *Service) Export() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Export()
}

// Import replaces the cart contents with a previously exported
// document
func (s *Service) Import(ctx context.Context, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Import(data); err != nil {
		return err
	}
	return s.finishMutation(ctx)
}

// ValidateStock checks every line against current catalog stock
func (s *Service) ValidateStock(ctx context.Context) ([]cart.StockIssue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stocks, err := s.currentStocks(ctx)
	if err != nil {
		return nil, err
	}
	return s.cart.ValidateStock(stocks), nil
}

// FixStockIssues clamps or removes lines that exceed current stock and
// returns how many lines were adjusted
func (s *Service) FixStockIssues(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stocks, err := s.currentStocks(ctx)
	if err != nil {
		return 0, err
	}

	fixed := s.cart.FixStockIssues(stocks)
	if fixed == 0 {
		return 0, nil
	}
	if err := s.finishMutation(ctx); err != nil {
		return 0, err
	}
	return fixed, nil
}

// currentStocks fetches the stock count for every carted SKU. SKUs no
// longer in the catalog count as zero stock.
func (s *Service) currentStocks(ctx context.Context) (map[string]int, error) {
	stocks := make(map[string]int)
	for _, item := range s.cart.Items() {
		product, err := s.productRepo.FindBySKU(ctx, item.Product.SKU)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				stocks[item.Product.SKU] = 0
				continue
			}
			return nil, err
		}
		stocks[item.Product.SKU] = product.StockCount
	}
	return stocks, nil
}

// finishMutation persists the cart and publishes its pending events.
// A plain storage failure only costs durability: it is logged, the
// in-memory cart stays authoritative and the events still go out. A
// quota overflow that survived eviction is returned to the caller with
// the pending events discarded so they cannot replay on a later
// mutation.
func (s *Service) finishMutation(ctx context.Context) error {
	err := s.persist(ctx)
	if errors.Is(err, cart.ErrStorageQuota) {
		s.cart.ClearDomainEvents()
		return err
	}
	if err != nil {
		s.logger.Warn("failed to persist cart, keeping in-memory state", zap.Error(err))
	}
	s.publishEvents(ctx)
	return nil
}

// persist saves the cart. When the store reports a quota overflow, the
// oldest lines are evicted once and the save retried; a second
// overflow surfaces as cart.ErrStorageQuota so the caller can prompt
// the shopper instead of losing the whole cart.
func (s *Service) persist(ctx context.Context) error {
	err := s.repo.Save(ctx, s.cart.Items())
	if !errors.Is(err, cart.ErrStorageQuota) {
		return err
	}

	evicted := s.cart.EvictOldest(s.config.EvictionBatchSize)
	s.logger.Warn("storage quota exceeded, evicted oldest cart lines",
		zap.Int("evicted", len(evicted)),
		zap.Int("remaining", s.cart.UniqueItemCount()))

	if err := s.repo.Save(ctx, s.cart.Items()); err != nil {
		return err
	}
	return nil
}

// publishEvents publishes pending domain events from the cart
func (s *Service) publishEvents(ctx context.Context) {
	if s.eventBus == nil {
		s.cart.ClearDomainEvents()
		return
	}
	for _, event := range s.cart.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	s.cart.ClearDomainEvents()
}

// snapshotOf freezes the product fields a cart line needs
func snapshotOf(product *catalog.Product) cart.ProductSnapshot {
	stock := product.StockCount
	return cart.ProductSnapshot{
		SKU:        product.SKU,
		Name:       product.Name,
		UnitPrice:  product.Price,
		StockCount: &stock,
		Category:   product.Category,
		ImageURL:   product.ImageURL,
	}
}
