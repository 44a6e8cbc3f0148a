package checkout

import (
	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeCheckout = "CheckoutSession"

// Event type constants
const EventTypeOrderPlaced = "checkout.order-placed"

// OrderPlacedEvent is published when a checkout completes
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID       string            `json:"order_id"`
	ItemCount     int               `json:"item_count"`
	Total         valueobject.Money `json:"total"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(s *Session, itemCount int, total valueobject.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeCheckout, s.ID),
		OrderID:         s.orderID,
		ItemCount:       itemCount,
		Total:           total,
		PaymentMethod:   s.payment.Method,
	}
}
