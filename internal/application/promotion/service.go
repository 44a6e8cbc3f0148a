package promotion

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/webmart/storefront/internal/domain/promotion"
	"github.com/webmart/storefront/internal/domain/shared"
)

// Service applies and tracks the cart's promo code
type Service struct {
	repo     promotion.Repository
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewService creates a new promotion service
func NewService(repo promotion.Repository, eventBus shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, logger: logger}
}

// Apply validates the code and stores it as the current promotion,
// replacing any previously applied one
func (s *Service) Apply(ctx context.Context, code string) (*promotion.AppliedPromo, error) {
	applied, err := promotion.Apply(code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, applied); err != nil {
		return nil, err
	}

	s.logger.Info("promo code applied",
		zap.String("code", applied.Code),
		zap.String("description", applied.Description))
	s.publishEvents(ctx, applied)
	return applied, nil
}

// Current returns the applied promotion, or nil when none is applied
func (s *Service) Current(ctx context.Context) (*promotion.AppliedPromo, error) {
	applied, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return applied, nil
}

// Remove discards the applied promotion
func (s *Service) Remove(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// publishEvents publishes domain events from the aggregate
func (s *Service) publishEvents(ctx context.Context, applied *promotion.AppliedPromo) {
	if s.eventBus == nil {
		return
	}
	for _, event := range applied.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	applied.ClearDomainEvents()
}
