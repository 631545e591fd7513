package users

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strconv"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
	pkgerrors "github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/logger"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

type recordStore interface {
	Load(ctx context.Context, key string) ([]storage.Record, error)
	Save(ctx context.Context, key string, records []storage.Record) error
}

// Service fronts one user's profile aggregate. It also satisfies the
// address lookup checkout falls back to when no shipping address is supplied.
type Service struct {
	store    recordStore
	ownerKey string
	userID   int
	email    string
	log      *logger.Logger
	validate *validator.Validate
}

// ServiceParams groups the dependencies for the user service.
type ServiceParams struct {
	Store  recordStore
	UserID int
	Email  string
	Logger *logger.Logger
}

// OwnerKey derives the storage key for a user profile.
func OwnerKey(userID int) string {
	return "user_" + strconv.Itoa(userID)
}

// NewService builds a user service bound to one profile.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("record store required")
	}
	if params.UserID <= 0 {
		return nil, fmt.Errorf("user id required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		store:    params.Store,
		ownerKey: OwnerKey(params.UserID),
		userID:   params.UserID,
		email:    params.Email,
		log:      params.Logger,
		validate: validator.New(),
	}, nil
}

// GetUser returns the profile, creating an empty one on first access.
func (s *Service) GetUser(ctx context.Context) (*User, error) {
	return s.load(ctx)
}

// AddAddress validates and appends an address to the book.
func (s *Service) AddAddress(ctx context.Context, address types.Address) (*User, error) {
	if err := s.validateAddress(address); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(user *User) error {
		user.AddAddress(address)
		return nil
	}, "address added")
}

// RemoveAddress drops the address at index.
func (s *Service) RemoveAddress(ctx context.Context, index int) (*User, error) {
	return s.mutate(ctx, func(user *User) error {
		return user.RemoveAddress(index)
	}, "address removed")
}

// SetDefaultAddress promotes the address at index.
func (s *Service) SetDefaultAddress(ctx context.Context, index int) (*User, error) {
	return s.mutate(ctx, func(user *User) error {
		return user.SetDefaultAddress(index)
	}, "default address set")
}

// DefaultAddress returns the default shipping address, or nil when the book
// has none. Checkout uses this as the fallback for an omitted address.
func (s *Service) DefaultAddress(ctx context.Context) (*types.Address, error) {
	user, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return user.DefaultAddress(), nil
}

// AddPaymentMethod validates and appends a payment method.
func (s *Service) AddPaymentMethod(ctx context.Context, method types.PaymentMethod) (*User, error) {
	if err := s.validatePaymentMethod(method); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(user *User) error {
		user.AddPaymentMethod(method)
		return nil
	}, "payment method added")
}

// RemovePaymentMethod drops the payment method at index.
func (s *Service) RemovePaymentMethod(ctx context.Context, index int) (*User, error) {
	return s.mutate(ctx, func(user *User) error {
		return user.RemovePaymentMethod(index)
	}, "payment method removed")
}

// SetDefaultPaymentMethod promotes the payment method at index.
func (s *Service) SetDefaultPaymentMethod(ctx context.Context, index int) (*User, error) {
	return s.mutate(ctx, func(user *User) error {
		return user.SetDefaultPaymentMethod(index)
	}, "default payment method set")
}

// DefaultPaymentMethod returns the default payment method, or nil.
func (s *Service) DefaultPaymentMethod(ctx context.Context) (*types.PaymentMethod, error) {
	user, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return user.DefaultPaymentMethod(), nil
}

func (s *Service) validateAddress(address types.Address) error {
	if err := s.validate.Struct(address); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, flatten(err), "invalid address")
	}
	return nil
}

func (s *Service) validatePaymentMethod(method types.PaymentMethod) error {
	if err := s.validate.Struct(method); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, flatten(err), "invalid payment method")
	}
	return nil
}

// flatten collapses validator field errors into one combined error so the
// caller sees every failing field at once.
func flatten(err error) error {
	var fieldErrors validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrors) {
		return err
	}
	var combined error
	for _, fieldError := range fieldErrors {
		combined = multierr.Append(combined, fmt.Errorf("%s failed on %s", fieldError.Field(), fieldError.Tag()))
	}
	return combined
}

func (s *Service) mutate(ctx context.Context, apply func(*User) error, message string) (*User, error) {
	user, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := apply(user); err != nil {
		return nil, err
	}

	record, err := user.toRecord()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode user")
	}
	if err := s.store.Save(ctx, s.ownerKey, []storage.Record{record}); err != nil {
		s.log.Error(s.log.WithUserID(ctx, strconv.Itoa(s.userID)), "persist user failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist user")
	}

	s.log.Info(s.log.WithUserID(ctx, strconv.Itoa(s.userID)), message)
	return user, nil
}

func (s *Service) load(ctx context.Context) (*User, error) {
	records, err := s.store.Load(ctx, s.ownerKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if len(records) == 0 {
		return New(s.userID, s.email), nil
	}
	user, err := userFromRecord(records[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode user")
	}
	return user, nil
}
