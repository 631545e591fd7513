package cart

import (
	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/catalog"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is an ordered collection of lines owned by a user or a guest session.
// No two lines share the same (product, variant, color, size) tuple.
type Cart struct {
	ID     string
	UserID *int
	Items  []*Item
}

// New creates an empty cart for the given owner. A nil userID means guest.
func New(userID *int) *Cart {
	return &Cart{ID: uuid.NewString(), UserID: userID}
}

// AddItem merges into an existing matching line or appends a new one, and
// returns the affected line. The product is snapshotted by value, so later
// catalog changes never reprice the cart.
func (c *Cart) AddItem(product catalog.Product, quantity int, opts ItemOptions) (*Item, error) {
	if quantity < 1 {
		return nil, errors.New(errors.CodeValidation, "quantity must be at least 1")
	}

	for _, item := range c.Items {
		if item.matches(product.ID, opts) {
			item.IncrementQuantity(quantity)
			return item, nil
		}
	}

	item := &Item{
		ID:        uuid.NewString(),
		Product:   product.Clone(),
		Quantity:  quantity,
		VariantID: copyIntPtr(opts.VariantID),
		Color:     copyStringPtr(opts.Color),
		Size:      copyStringPtr(opts.Size),
	}
	c.Items = append(c.Items, item)
	return item, nil
}

// RemoveItem drops the line with the given id. Unknown ids are a no-op.
func (c *Cart) RemoveItem(itemID string) {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateItemQuantity sets the quantity directly. A non-positive quantity is
// equivalent to removal; updating an unknown id is a not-found error.
func (c *Cart) UpdateItemQuantity(itemID string, quantity int) (*Item, error) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return nil, nil
	}
	for _, item := range c.Items {
		if item.ID == itemID {
			item.Quantity = quantity
			return item, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "cart item not found")
}

// Clear empties the lines without changing ownership.
func (c *Cart) Clear() {
	c.Items = nil
}

// HasProduct reports whether any line references the product, regardless of
// variant selectors.
func (c *Cart) HasProduct(productID int) bool {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// ItemCount returns the summed quantity across lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the summed line subtotals.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := money.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	return subtotal
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}

func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}
