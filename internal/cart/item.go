package cart

import (
	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/catalog"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// ItemOptions carries the optional variant selectors that distinguish cart
// lines for the same product.
type ItemOptions struct {
	VariantID *int
	Color     *string
	Size      *string
}

// Item is one line in a cart: a product snapshot taken at add time, a
// quantity, and the variant selectors.
type Item struct {
	ID        string
	Product   catalog.Product
	Quantity  int
	VariantID *int
	Color     *string
	Size      *string
}

// IncrementQuantity raises the quantity by amount. Non-positive amounts are
// ignored; the UI only ever passes positive deltas.
func (i *Item) IncrementQuantity(amount int) {
	if amount <= 0 {
		return
	}
	i.Quantity += amount
}

// DecrementQuantity lowers the quantity by amount, flooring at 1. Removing a
// line is a cart-level operation, never a side effect of decrementing.
func (i *Item) DecrementQuantity(amount int) {
	if amount <= 0 {
		return
	}
	i.Quantity -= amount
	if i.Quantity < 1 {
		i.Quantity = 1
	}
}

// Subtotal returns price × quantity, computed on every read.
func (i *Item) Subtotal() decimal.Decimal {
	return money.Line(i.Product.Price, i.Quantity)
}

func (i *Item) matches(productID int, opts ItemOptions) bool {
	return i.Product.ID == productID &&
		equalIntPtr(i.VariantID, opts.VariantID) &&
		equalStringPtr(i.Color, opts.Color) &&
		equalStringPtr(i.Size, opts.Size)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
