package cart

import (
	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// PricingPolicy holds the literal rates used for cart summaries.
// Tax is a flat percentage of the subtotal; shipping is a flat fee
// waived once the subtotal reaches the free-shipping threshold.
type PricingPolicy struct {
	TaxRatePercent        decimal.Decimal
	FreeShippingThreshold valueobject.Money
	FlatShippingFee       valueobject.Money
}

// DefaultPricingPolicy returns the storefront's stock rates:
// 8.25% tax, free shipping at a 25.00 subtotal, 5.99 flat fee below it.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRatePercent:        decimal.NewFromFloat(8.25),
		FreeShippingThreshold: valueobject.NewMoneyUSDFromFloat(25),
		FlatShippingFee:       valueobject.NewMoneyUSDFromFloat(5.99),
	}
}

// Tax returns the estimated tax for the given subtotal
func (p PricingPolicy) Tax(subtotal valueobject.Money) valueobject.Money {
	return subtotal.CalculatePercentage(p.TaxRatePercent).Round(2)
}

// Shipping returns the estimated shipping fee for the given subtotal
func (p PricingPolicy) Shipping(subtotal valueobject.Money) valueobject.Money {
	free, err := subtotal.GreaterThanOrEqual(p.FreeShippingThreshold)
	if err == nil && free {
		return valueobject.Zero(subtotal.Currency())
	}
	return p.FlatShippingFee
}
