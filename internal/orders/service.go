package orders

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/cart"
	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/enums"
	pkgerrors "github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/logger"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/metrics"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
	"github.com/google/uuid"
)

// Service fronts the order collection for one owner. Orders are created from
// carts at checkout and then move through the status lifecycle.
type Service struct {
	store     recordStore
	cart      cartSource
	addresses addressSource
	pricing   PricingPolicy
	ownerKey  string
	userID    *int
	log       *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// ServiceParams groups the dependencies for the order service. Addresses may
// be nil when the owner has no user profile (guest checkout).
type ServiceParams struct {
	Store     recordStore
	Cart      cartSource
	Addresses addressSource
	Pricing   PricingPolicy
	UserID    *int
	Logger    *logger.Logger
	Metrics   *metrics.StorefrontMetrics
}

// CreateOrderInput captures the checkout payload.
type CreateOrderInput struct {
	ShippingAddress *types.Address
	BillingAddress  *types.Address
	ShippingMethod  enums.ShippingMethod
	PaymentMethod   string
	Notes           *string
}

// OwnerKey derives the storage key for an order collection owner.
func OwnerKey(userID *int) string {
	if userID == nil {
		return "orders_guest"
	}
	return "orders_" + strconv.Itoa(*userID)
}

// NewService builds an order service bound to one owner key.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("record store required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart source required")
	}
	if err := params.Pricing.validate(); err != nil {
		return nil, fmt.Errorf("pricing policy: %w", err)
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		store:     params.Store,
		cart:      params.Cart,
		addresses: params.Addresses,
		pricing:   params.Pricing,
		ownerKey:  OwnerKey(params.UserID),
		userID:    params.UserID,
		log:       params.Logger,
		metrics:   params.Metrics,
	}, nil
}

// CreateOrder converts the owner's cart into an immutable order: snapshots
// the lines, prices the order, persists it, and clears the cart. The cart is
// only cleared after the order has been recorded, so a failed save never
// loses the cart.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	current, err := s.cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil || current.IsEmpty() {
		s.metrics.IncOrderFailure(string(pkgerrors.CodeEmptyCart))
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot create an order from an empty cart")
	}

	method := input.ShippingMethod
	if method == "" {
		method = enums.ShippingMethodStandard
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping method").
			WithDetails(map[string]string{"shipping_method": string(input.ShippingMethod)})
	}

	shippingAddress, err := s.resolveShippingAddress(ctx, input.ShippingAddress)
	if err != nil {
		s.metrics.IncOrderFailure(string(pkgerrors.CodeMissingAddress))
		return nil, err
	}
	billingAddress := shippingAddress
	if input.BillingAddress != nil && !input.BillingAddress.IsZero() {
		billingAddress = *input.BillingAddress
	}

	order := buildOrder(current, shippingAddress, billingAddress, method, input, s.pricing)

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	record, err := order.toRecord()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order")
	}
	if err := s.store.Save(ctx, s.ownerKey, append(records, record)); err != nil {
		s.log.Error(s.log.WithOwnerKey(ctx, s.ownerKey), "persist order failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	// The order is recorded; clearing the cart afterwards keeps checkout
	// atomic from the caller's side. A clear failure still propagates so the
	// divergence is visible instead of silently masked.
	if err := s.cart.Clear(ctx); err != nil {
		s.log.Error(s.log.WithOrderID(ctx, order.ID), "clear cart after checkout failed", err)
		return nil, err
	}

	s.metrics.IncOrderCreated()
	s.log.Info(s.log.WithOrderID(s.log.WithOwnerKey(ctx, s.ownerKey), order.ID), "order created")
	return order, nil
}

// UpdateStatus moves an order through the lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, next enums.OrderStatus) (*Order, error) {
	return s.mutate(ctx, orderID, func(order *Order) error {
		if err := order.TransitionTo(next); err != nil {
			s.metrics.IncOrderFailure(string(pkgerrors.As(err).Code()))
			return err
		}
		return nil
	})
}

// CancelOrder is the cancellation shortcut used by the account pages.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	return s.UpdateStatus(ctx, orderID, enums.OrderStatusCancelled)
}

// AddTrackingNumber attaches a tracking number to an in-fulfillment order.
func (s *Service) AddTrackingNumber(ctx context.Context, orderID, trackingNumber string) (*Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking number is required")
	}
	return s.mutate(ctx, orderID, func(order *Order) error {
		if err := order.SetTrackingNumber(trackingNumber); err != nil {
			s.metrics.IncOrderFailure(string(pkgerrors.As(err).Code()))
			return err
		}
		return nil
	})
}

// GetOrder returns one order by id.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// ListOrders returns the owner's orders, most recent first.
func (s *Service) ListOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *Service) resolveShippingAddress(ctx context.Context, supplied *types.Address) (types.Address, error) {
	if supplied != nil && !supplied.IsZero() {
		return *supplied, nil
	}
	if s.addresses != nil {
		fallback, err := s.addresses.DefaultAddress(ctx)
		if err != nil {
			return types.Address{}, err
		}
		if fallback != nil {
			return *fallback, nil
		}
	}
	return types.Address{}, pkgerrors.New(pkgerrors.CodeMissingAddress, "no shipping address supplied and no default on file")
}

func (s *Service) mutate(ctx context.Context, orderID string, apply func(*Order) error) (*Order, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	var target *Order
	for i, raw := range records {
		order, err := orderFromRecord(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order")
		}
		if order.ID == orderID {
			index = i
			target = order
			break
		}
	}
	if target == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	if err := apply(target); err != nil {
		return nil, err
	}

	updated, err := target.toRecord()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order")
	}
	records[index] = updated
	if err := s.store.Save(ctx, s.ownerKey, records); err != nil {
		s.log.Error(s.log.WithOrderID(ctx, orderID), "persist order failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	s.log.Info(s.log.WithOrderID(ctx, orderID), "order updated")
	return target, nil
}

func (s *Service) loadRecords(ctx context.Context) ([]storage.Record, error) {
	records, err := s.store.Load(ctx, s.ownerKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}
	return records, nil
}

func (s *Service) loadOrders(ctx context.Context) ([]*Order, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]*Order, 0, len(records))
	for _, raw := range records {
		order, err := orderFromRecord(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order")
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func buildOrder(current *cart.Cart, shipping, billing types.Address, method enums.ShippingMethod, input CreateOrderInput, pricing PricingPolicy) *Order {
	now := time.Now().UTC()
	order := &Order{
		ID:              uuid.NewString(),
		UserID:          current.UserID,
		Items:           make([]Item, 0, len(current.Items)),
		Status:          enums.OrderStatusPending,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		ShippingMethod:  method,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, line := range current.Items {
		order.Items = append(order.Items, Item{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
			VariantID:   line.VariantID,
			Color:       line.Color,
			Size:        line.Size,
			Image:       line.Product.Image,
		})
	}

	subtotal := current.Subtotal()
	order.Subtotal = subtotal
	order.Shipping = pricing.ShippingFor(method, subtotal)
	order.Tax = pricing.TaxFor(subtotal)
	order.Total = subtotal.Add(order.Shipping).Add(order.Tax)
	return order
}
