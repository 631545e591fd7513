package types

import "github.com/shopspring/decimal"

// Rating is the aggregated review score carried on catalog products.
type Rating struct {
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}
