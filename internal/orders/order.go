package orders

import (
	"time"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/enums"
	pkgerrors "github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/money"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Item is an immutable copy of a cart line taken at order-creation time.
// It deliberately carries values, not a product reference, so catalog changes
// never reprice historical orders.
type Item struct {
	ProductID   int
	ProductName string
	Price       decimal.Decimal
	Quantity    int
	VariantID   *int
	Color       *string
	Size        *string
	Image       string
}

// Subtotal returns price × quantity for the snapshotted values.
func (i Item) Subtotal() decimal.Decimal {
	return money.Line(i.Price, i.Quantity)
}

// Order is the immutable snapshot of a cart at checkout, plus addresses,
// pricing and a forward-only status lifecycle.
type Order struct {
	ID              string
	UserID          *int
	Items           []Item
	Status          enums.OrderStatus
	ShippingAddress types.Address
	BillingAddress  types.Address
	ShippingMethod  enums.ShippingMethod
	PaymentMethod   string
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	Notes           *string
	TrackingNumber  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransitionTo moves the order to the next status when the lifecycle permits
// it, refreshing UpdatedAt.
func (o *Order) TransitionTo(next enums.OrderStatus) error {
	if !next.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]string{"status": string(next)})
	}
	if !o.Status.CanTransitionTo(next) {
		return pkgerrors.New(pkgerrors.CodeInvalidTransition, "status transition not permitted").
			WithDetails(map[string]string{"from": string(o.Status), "to": string(next)})
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// SetTrackingNumber attaches a carrier tracking number. Only permitted while
// the order is in fulfillment (processing or shipped).
func (o *Order) SetTrackingNumber(trackingNumber string) error {
	if o.Status != enums.OrderStatusProcessing && o.Status != enums.OrderStatusShipped {
		return pkgerrors.New(pkgerrors.CodeInvalidState, "tracking number not allowed in current status").
			WithDetails(map[string]string{"status": string(o.Status)})
	}
	o.TrackingNumber = &trackingNumber
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// recomputeTotals rebuilds the derived amounts from the item snapshots and
// the stored shipping/tax, keeping total = subtotal + shipping + tax an
// identity rather than a stored value.
func (o *Order) recomputeTotals() {
	subtotal := money.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(o.Shipping).Add(o.Tax)
}
