package notification

import (
	"context"
	"fmt"

	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/checkout"
	"github.com/webmart/storefront/internal/domain/promotion"
	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/wishlist"
)

// EventListener turns domain events into toasts
type EventListener struct {
	center *Center
}

// NewEventListener creates a listener bound to the given center
func NewEventListener(center *Center) *EventListener {
	return &EventListener{center: center}
}

// EventTypes returns the event types this listener reacts to
func (l *EventListener) EventTypes() []string {
	return []string{
		cart.EventTypeItemAdded,
		cart.EventTypeItemRemoved,
		cart.EventTypeQuantityUpdated,
		cart.EventTypeCartCleared,
		cart.EventTypeCartImported,
		cart.EventTypeStockIssuesFixed,
		promotion.EventTypePromotionApplied,
		checkout.EventTypeOrderPlaced,
		wishlist.EventTypeItemAdded,
		wishlist.EventTypeItemRemoved,
	}
}

// Handle maps one domain event to its toast
func (l *EventListener) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *cart.ItemAddedEvent:
		l.center.Show(fmt.Sprintf("Item added to cart! (%d items total)", e.TotalItems), TypeCart)
	case *cart.ItemRemovedEvent:
		l.center.Warning("Item removed from cart")
	case *cart.QuantityUpdatedEvent:
		l.center.Info("Cart quantity updated")
	case *cart.CartClearedEvent:
		l.center.Info("Cart cleared")
	case *cart.CartImportedEvent:
		l.center.Success(fmt.Sprintf("Cart imported with %d items", e.ImportedItemCount))
	case *cart.StockIssuesFixedEvent:
		l.center.Warning(fmt.Sprintf("Fixed %d stock issues in your cart", e.FixedItemCount))
	case *promotion.PromotionAppliedEvent:
		l.center.Success(fmt.Sprintf("Promo code %q applied successfully!", e.Code))
	case *checkout.OrderPlacedEvent:
		l.center.Show(fmt.Sprintf("Your order %s has been placed successfully.", e.OrderID), TypeBuy)
	case *wishlist.ItemAddedEvent:
		l.center.Success("Product added to your wishlist.")
	case *wishlist.ItemRemovedEvent:
		l.center.Info("Product removed from your wishlist.")
	}
	return nil
}
