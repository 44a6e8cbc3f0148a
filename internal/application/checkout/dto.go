package checkout

import (
	"time"

	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/checkout"
	"github.com/webmart/storefront/internal/domain/promotion"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// ReviewResponse is everything shown on the review step
type ReviewResponse struct {
	Address        checkout.ShippingAddress `json:"address"`
	PaymentDisplay string                   `json:"payment_display"`
	Items          []cart.LineItem          `json:"items"`
	Summary        cart.Summary             `json:"summary"`
	Promo          *promotion.AppliedPromo  `json:"promo,omitempty"`
}

// OrderConfirmation is returned once the order is placed
type OrderConfirmation struct {
	OrderID   string            `json:"order_id"`
	ItemCount int               `json:"item_count"`
	Total     valueobject.Money `json:"total"`
	PlacedAt  time.Time         `json:"placed_at"`
}
