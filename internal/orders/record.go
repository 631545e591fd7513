package orders

import (
	"encoding/json"
	"time"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/enums"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// orderRecord is the serialized order shape. Shipping and tax are stored
// because they depend on the policy in force at creation time; subtotal and
// total are recomputed on reconstruction.
type orderRecord struct {
	ID              string               `json:"id"`
	UserID          *int                 `json:"user_id,omitempty"`
	Items           []orderItemRecord    `json:"items"`
	Status          enums.OrderStatus    `json:"status"`
	ShippingAddress types.Address        `json:"shipping_address"`
	BillingAddress  types.Address        `json:"billing_address"`
	ShippingMethod  enums.ShippingMethod `json:"shipping_method"`
	PaymentMethod   string               `json:"payment_method"`
	Shipping        decimal.Decimal      `json:"shipping"`
	Tax             decimal.Decimal      `json:"tax"`
	Notes           *string              `json:"notes,omitempty"`
	TrackingNumber  *string              `json:"tracking_number,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type orderItemRecord struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	VariantID   *int            `json:"variant_id,omitempty"`
	Color       *string         `json:"color,omitempty"`
	Size        *string         `json:"size,omitempty"`
	Image       string          `json:"image,omitempty"`
}

func (o *Order) toRecord() (storage.Record, error) {
	record := orderRecord{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           make([]orderItemRecord, 0, len(o.Items)),
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		ShippingMethod:  o.ShippingMethod,
		PaymentMethod:   o.PaymentMethod,
		Shipping:        o.Shipping,
		Tax:             o.Tax,
		Notes:           o.Notes,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		record.Items = append(record.Items, orderItemRecord(item))
	}
	return storage.Marshal(record)
}

func orderFromRecord(raw storage.Record) (*Order, error) {
	var record orderRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	order := &Order{
		ID:              record.ID,
		UserID:          record.UserID,
		Status:          record.Status,
		ShippingAddress: record.ShippingAddress,
		BillingAddress:  record.BillingAddress,
		ShippingMethod:  record.ShippingMethod,
		PaymentMethod:   record.PaymentMethod,
		Shipping:        record.Shipping,
		Tax:             record.Tax,
		Notes:           record.Notes,
		TrackingNumber:  record.TrackingNumber,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	for _, item := range record.Items {
		order.Items = append(order.Items, Item(item))
	}
	order.recomputeTotals()
	return order, nil
}
