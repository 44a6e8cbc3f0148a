package promotion

import (
	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePromotion = "Promotion"

// Event type constants
const EventTypePromotionApplied = "promotion.applied"

// PromotionAppliedEvent is published when a promo code is applied
type PromotionAppliedEvent struct {
	shared.BaseDomainEvent
	Code         string          `json:"code"`
	DiscountRate decimal.Decimal `json:"discount"`
	Description  string          `json:"description"`
	FreeShipping bool            `json:"free_shipping"`
}

// NewPromotionAppliedEvent creates a new PromotionAppliedEvent
func NewPromotionAppliedEvent(applied *AppliedPromo) *PromotionAppliedEvent {
	return &PromotionAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePromotionApplied, AggregateTypePromotion, applied.ID),
		Code:            applied.Code,
		DiscountRate:    applied.DiscountRate,
		Description:     applied.Description,
		FreeShipping:    applied.FreeShipping,
	}
}
