package promotion

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// ErrInvalidCode is returned when a promo code is not recognized
var ErrInvalidCode = shared.NewDomainError("INVALID_PROMO_CODE", "Invalid promo code")

// Promotion describes a promo code and its effect. DiscountRate is a
// fraction of the subtotal and is surfaced for display only; order
// totals are computed without it.
type Promotion struct {
	Code         string          `json:"code"`
	DiscountRate decimal.Decimal `json:"discount"`
	Description  string          `json:"description"`
	FreeShipping bool            `json:"free_shipping,omitempty"`
}

// catalog of recognized promo codes
var promotions = map[string]Promotion{
	"SAVE10": {
		Code:         "SAVE10",
		DiscountRate: decimal.NewFromFloat(0.10),
		Description:  "10% off",
	},
	"SAVE20": {
		Code:         "SAVE20",
		DiscountRate: decimal.NewFromFloat(0.20),
		Description:  "20% off",
	},
	"FREESHIP": {
		Code:         "FREESHIP",
		DiscountRate: decimal.Zero,
		Description:  "Free shipping",
		FreeShipping: true,
	},
	"NEWUSER": {
		Code:         "NEWUSER",
		DiscountRate: decimal.NewFromFloat(0.15),
		Description:  "15% off for new users",
	},
}

// Find looks up a promotion by code. Codes are matched after trimming
// whitespace and uppercasing, so user input can be passed directly.
func Find(code string) (Promotion, bool) {
	p, ok := promotions[NormalizeCode(code)]
	return p, ok
}

// NormalizeCode canonicalizes user-entered promo code input
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountAmount computes the display discount for the given subtotal
func (p Promotion) DiscountAmount(subtotal valueobject.Money) valueobject.Money {
	return subtotal.Multiply(p.DiscountRate).Round(2)
}

// AppliedPromo is the promotion currently attached to the cart. At most
// one is applied at a time; applying a new code replaces the old one.
type AppliedPromo struct {
	shared.BaseAggregateRoot
	Promotion
	AppliedAt time.Time `json:"applied_at"`
}

// Apply validates the code and returns the applied promotion
func Apply(code string) (*AppliedPromo, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Please enter a promo code")
	}

	p, ok := Find(normalized)
	if !ok {
		return nil, ErrInvalidCode
	}

	applied := &AppliedPromo{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Promotion:         p,
		AppliedAt:         time.Now(),
	}
	applied.AddDomainEvent(NewPromotionAppliedEvent(applied))
	return applied, nil
}
