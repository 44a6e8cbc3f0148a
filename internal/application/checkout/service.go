package checkout

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/checkout"
	"github.com/webmart/storefront/internal/domain/promotion"
	"github.com/webmart/storefront/internal/domain/shared"
)

// DefaultProcessingDelay simulates the payment gateway round trip
const DefaultProcessingDelay = 2 * time.Second

// CartGateway is the slice of the cart service the checkout needs
type CartGateway interface {
	Items() []cart.LineItem
	ItemCount() int
	Summary() cart.Summary
	Clear(ctx context.Context) (int, error)
	FixStockIssues(ctx context.Context) (int, error)
}

// PromoGateway exposes the applied promotion to the checkout
type PromoGateway interface {
	Current(ctx context.Context) (*promotion.AppliedPromo, error)
	Remove(ctx context.Context) error
}

// Service walks a single checkout session through its steps and places
// the order
type Service struct {
	mu              sync.Mutex
	session         *checkout.Session
	carts           CartGateway
	promos          PromoGateway
	eventBus        shared.EventPublisher
	logger          *zap.Logger
	processingDelay time.Duration
}

// NewService creates a new checkout service
func NewService(carts CartGateway, promos PromoGateway, eventBus shared.EventPublisher, logger *zap.Logger, processingDelay time.Duration) *Service {
	return &Service{
		carts:           carts,
		promos:          promos,
		eventBus:        eventBus,
		logger:          logger,
		processingDelay: processingDelay,
	}
}

// Begin starts a fresh checkout session. The cart must not be empty.
func (s *Service) Begin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.carts.ItemCount() == 0 {
		return shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	}
	s.session = checkout.NewSession()
	return nil
}

// Step returns the current session step, empty when no session is open
func (s *Service) Step() checkout.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Step()
}

// SubmitAddress validates and records the shipping address
func (s *Service) SubmitAddress(ctx context.Context, address checkout.ShippingAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.openSession()
	if err != nil {
		return err
	}
	return session.SubmitAddress(address)
}

// SubmitPayment records the validated payment selection
func (s *Service) SubmitPayment(ctx context.Context, payment checkout.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.openSession()
	if err != nil {
		return err
	}
	return session.SubmitPayment(payment)
}

// Back returns to the previous step
func (s *Service) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.openSession()
	if err != nil {
		return err
	}
	return session.Back()
}

// Review assembles everything shown on the review step
func (s *Service) Review(ctx context.Context) (*ReviewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.openSession()
	if err != nil {
		return nil, err
	}
	if session.Step() != checkout.StepReview {
		return nil, shared.NewDomainError("INVALID_STATE", "Checkout is not at the review step")
	}

	promo, err := s.promos.Current(ctx)
	if err != nil {
		return nil, err
	}

	return &ReviewResponse{
		Address:        session.Address(),
		PaymentDisplay: session.Payment().Display(),
		Items:          s.carts.Items(),
		Summary:        s.carts.Summary(),
		Promo:          promo,
	}, nil
}

// PlaceOrder completes the checkout. Processing is simulated with a
// delay; cancelling the context abandons the attempt with the session
// still at the review step. On success the cart and any applied promo
// are cleared.
func (s *Service) PlaceOrder(ctx context.Context) (*OrderConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.openSession()
	if err != nil {
		return nil, err
	}
	if session.Step() != checkout.StepReview {
		return nil, shared.NewDomainError("INVALID_STATE", "Checkout is not at the review step")
	}

	// reconcile against current stock before charging
	fixed, err := s.carts.FixStockIssues(ctx)
	if err != nil {
		return nil, err
	}
	if fixed > 0 {
		s.logger.Warn("stock issues fixed during checkout", zap.Int("fixed", fixed))
	}
	if s.carts.ItemCount() == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	}

	if s.processingDelay > 0 {
		timer := time.NewTimer(s.processingDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	summary := s.carts.Summary()
	placedAt := time.Now()
	orderID, err := session.PlaceOrder(placedAt, summary.ItemCount, summary.Total)
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear cart after order placement", zap.Error(err))
	}
	if err := s.promos.Remove(ctx); err != nil {
		s.logger.Warn("failed to clear applied promo after order placement", zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.Int("items", summary.ItemCount),
		zap.String("total", summary.Total.StringFixed(2)))

	s.publishEvents(ctx, session)
	s.session = nil

	return &OrderConfirmation{
		OrderID:   orderID,
		ItemCount: summary.ItemCount,
		Total:     summary.Total,
		PlacedAt:  placedAt,
	}, nil
}

func (s *Service) openSession() (*checkout.Session, error) {
	if s.session == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "No checkout in progress")
	}
	return s.session, nil
}

// publishEvents publishes domain events from the session
func (s *Service) publishEvents(ctx context.Context, session *checkout.Session) {
	if s.eventBus == nil {
		return
	}
	for _, event := range session.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	session.ClearDomainEvents()
}
