package wishlist

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/wishlist"
)

// Service owns the shopper's wishlist state
type Service struct {
	mu       sync.Mutex
	wishlist *wishlist.Wishlist
	repo     wishlist.Repository
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewService creates a wishlist service hydrated from the repository.
// A load failure starts the wishlist empty.
func NewService(ctx context.Context, repo wishlist.Repository, eventBus shared.EventPublisher, logger *zap.Logger) *Service {
	entries, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("failed to load saved wishlist, starting empty", zap.Error(err))
		entries = nil
	}
	return &Service{
		wishlist: wishlist.NewWishlistFromEntries(entries),
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Toggle saves the product when absent and removes it when present.
// It reports true when the product was added.
func (s *Service) Toggle(ctx context.Context, product *catalog.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.wishlist.Toggle(wishlist.Entry{
		SKU:      product.SKU,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
	})
	if err != nil {
		return false, err
	}
	s.persist(ctx)
	return added, nil
}

// Remove deletes a saved product by SKU
func (s *Service) Remove(ctx context.Context, sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.wishlist.Remove(sku); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Clear removes every saved product
func (s *Service) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := s.wishlist.Clear()
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear saved wishlist", zap.Error(err))
	}
	return cleared, nil
}

// Contains reports whether the SKU is saved
func (s *Service) Contains(sku string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(sku)
}

// Entries returns a copy of the saved entries
func (s *Service) Entries() []wishlist.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Entries()
}

// Count returns the number of saved entries
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Count()
}

// persist saves the wishlist and publishes its pending events. A save
// failure only costs durability: it is logged, the in-memory wishlist
// stays authoritative and the events still go out.
func (s *Service) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.wishlist.Entries()); err != nil {
		s.logger.Warn("failed to persist wishlist, keeping in-memory state", zap.Error(err))
	}
	s.publishEvents(ctx)
}

// publishEvents publishes pending domain events from the wishlist
func (s *Service) publishEvents(ctx context.Context) {
	if s.eventBus == nil {
		s.wishlist.ClearDomainEvents()
		return
	}
	for _, event := range s.wishlist.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	s.wishlist.ClearDomainEvents()
}
