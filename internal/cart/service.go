package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/catalog"
	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
	pkgerrors "github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/logger"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

type recordStore interface {
	Load(ctx context.Context, key string) ([]storage.Record, error)
	Save(ctx context.Context, key string, records []storage.Record) error
}

type productResolver interface {
	GetProduct(ctx context.Context, id int) (*catalog.Product, error)
}

// Service fronts the cart aggregate for one owner: every mutation loads the
// current cart, applies the change in memory, and writes the full collection
// back through the persistence port.
type Service struct {
	store    recordStore
	catalog  productResolver
	ownerKey string
	userID   *int
	log      *logger.Logger
	metrics  *metrics.StorefrontMetrics

	current *Cart
}

// ServiceParams groups the dependencies for the cart service.
type ServiceParams struct {
	Store   recordStore
	Catalog productResolver
	UserID  *int
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// OwnerKey derives the storage key for a cart owner. A nil user id maps to
// the shared guest key.
func OwnerKey(userID *int) string {
	if userID == nil {
		return "cart_guest"
	}
	return "cart_" + strconv.Itoa(*userID)
}

// NewService builds a cart service bound to one owner key. Callers construct
// one service per owner; switching owners means constructing a new service,
// which is what keeps one owner's cached cart out of another's session.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("record store required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog provider required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		store:    params.Store,
		catalog:  params.Catalog,
		ownerKey: OwnerKey(params.UserID),
		userID:   params.UserID,
		log:      params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// OwnerKeyString returns the storage key this service operates on.
func (s *Service) OwnerKeyString() string {
	return s.ownerKey
}

// AddItem resolves the product through the catalog port, merges it into the
// cart, persists, and returns the affected line.
func (s *Service) AddItem(ctx context.Context, productID, quantity int, opts ItemOptions) (*Item, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	item, err := cart.AddItem(*product, quantity, opts)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("add_item")
	s.log.Info(s.log.WithOwnerKey(ctx, s.ownerKey), "cart item added")
	return item, nil
}

// RemoveItem drops a line by id; removing an unknown id persists the
// unchanged cart and is not an error.
func (s *Service) RemoveItem(ctx context.Context, itemID string) error {
	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	cart.RemoveItem(itemID)
	if err := s.persist(ctx, cart); err != nil {
		return err
	}

	s.metrics.IncCartMutation("remove_item")
	s.log.Info(s.log.WithOwnerKey(ctx, s.ownerKey), "cart item removed")
	return nil
}

// UpdateItemQuantity sets a line's quantity; non-positive quantities remove
// the line. Returns the updated line, or nil when the line was removed.
func (s *Service) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*Item, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	item, err := cart.UpdateItemQuantity(itemID, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("update_quantity")
	s.log.Info(s.log.WithOwnerKey(ctx, s.ownerKey), "cart item quantity updated")
	return item, nil
}

// Clear empties the cart and persists the empty collection.
func (s *Service) Clear(ctx context.Context) error {
	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	cart.Clear()
	if err := s.persist(ctx, cart); err != nil {
		return err
	}

	s.metrics.IncCartMutation("clear")
	s.log.Info(s.log.WithOwnerKey(ctx, s.ownerKey), "cart cleared")
	return nil
}

// GetCart returns the current cart without mutating stored state.
func (s *Service) GetCart(ctx context.Context) (*Cart, error) {
	return s.load(ctx)
}

// ItemCount returns the summed quantity across lines.
func (s *Service) ItemCount(ctx context.Context) (int, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

// Subtotal returns the summed line subtotals.
func (s *Service) Subtotal(ctx context.Context) (decimal.Decimal, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Subtotal(), nil
}

// HasProduct reports whether any line references the product.
func (s *Service) HasProduct(ctx context.Context, productID int) (bool, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return cart.HasProduct(productID), nil
}

func (s *Service) load(ctx context.Context) (*Cart, error) {
	if s.current != nil {
		return s.current, nil
	}

	records, err := s.store.Load(ctx, s.ownerKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(records) == 0 {
		s.current = New(s.userID)
		return s.current, nil
	}

	cart, err := cartFromRecord(records[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart")
	}
	s.current = cart
	return cart, nil
}

func (s *Service) persist(ctx context.Context, cart *Cart) error {
	record, err := cart.toRecord()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Save(ctx, s.ownerKey, []storage.Record{record}); err != nil {
		// Drop the cache so the next operation reloads the last persisted state.
		s.current = nil
		s.log.Error(s.log.WithOwnerKey(ctx, s.ownerKey), "persist cart failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	s.current = cart
	return nil
}
