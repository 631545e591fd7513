package orders

import (
	"fmt"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/config"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/enums"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// PricingPolicy holds the deployment's checkout pricing constants. Tax is
// applied to the subtotal only, never to shipping.
type PricingPolicy struct {
	TaxRate               decimal.Decimal
	StandardRate          decimal.Decimal
	ExpressRate           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// DefaultPricingPolicy returns the stock policy: 8% tax, 5.99 standard
// shipping free above 50, 12.99 express.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               decimal.RequireFromString("0.08"),
		StandardRate:          decimal.RequireFromString("5.99"),
		ExpressRate:           decimal.RequireFromString("12.99"),
		FreeShippingThreshold: decimal.NewFromInt(50),
	}
}

// PricingPolicyFromConfig builds the policy from deployment configuration.
func PricingPolicyFromConfig(cfg config.PricingConfig) PricingPolicy {
	return PricingPolicy{
		TaxRate:               cfg.TaxRate(),
		StandardRate:          cfg.StandardShipping(),
		ExpressRate:           cfg.ExpressShipping(),
		FreeShippingThreshold: cfg.FreeShippingThreshold(),
	}
}

// validate rejects unpopulated policies. A zero-value PricingPolicy would
// silently price every order with free shipping and no tax.
func (p PricingPolicy) validate() error {
	if p.TaxRate.IsNegative() {
		return fmt.Errorf("tax rate must be non-negative")
	}
	if !p.StandardRate.IsPositive() {
		return fmt.Errorf("standard shipping rate must be positive")
	}
	if !p.ExpressRate.IsPositive() {
		return fmt.Errorf("express shipping rate must be positive")
	}
	if !p.FreeShippingThreshold.IsPositive() {
		return fmt.Errorf("free shipping threshold must be positive")
	}
	return nil
}

// ShippingFor returns the shipping charge for the method and subtotal.
// Express is always flat rate; standard is free strictly above the threshold.
func (p PricingPolicy) ShippingFor(method enums.ShippingMethod, subtotal decimal.Decimal) decimal.Decimal {
	if method == enums.ShippingMethodExpress {
		return p.ExpressRate
	}
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return money.Zero
	}
	return p.StandardRate
}

// TaxFor returns the tax on a subtotal, rounded to cents.
func (p PricingPolicy) TaxFor(subtotal decimal.Decimal) decimal.Decimal {
	return money.ApplyRate(subtotal, p.TaxRate)
}
