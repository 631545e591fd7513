// Package money centralizes currency arithmetic conventions. All amounts are
// shopspring decimals rounded half-up to two places at computation boundaries.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var Zero = decimal.Zero

// RoundCents normalizes an amount to currency precision.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Parse converts a decimal string into an amount, rejecting negatives.
func Parse(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must be non-negative", value)
	}
	return amount, nil
}

// Line multiplies a unit price by a quantity.
func Line(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return RoundCents(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// ApplyRate multiplies an amount by a fractional rate and rounds to cents.
func ApplyRate(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundCents(amount.Mul(rate))
}
