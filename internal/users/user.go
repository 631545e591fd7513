package users

import (
	pkgerrors "github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
)

// User is the profile aggregate. Address and payment-method books each hold
// at most one default entry; mutations keep that uniqueness.
type User struct {
	ID             int                   `json:"id"`
	Email          string                `json:"email"`
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
	Addresses      []types.Address       `json:"addresses"`
	PaymentMethods []types.PaymentMethod `json:"payment_methods"`
}

// New builds an empty profile.
func New(id int, email string) *User {
	return &User{ID: id, Email: email}
}

// AddAddress appends an address. A new default demotes every existing one.
func (u *User) AddAddress(address types.Address) {
	if address.IsDefault {
		for i := range u.Addresses {
			u.Addresses[i].IsDefault = false
		}
	}
	u.Addresses = append(u.Addresses, address)
}

// RemoveAddress drops the address at index. Removing the default leaves the
// book with no default rather than promoting another entry.
func (u *User) RemoveAddress(index int) error {
	if index < 0 || index >= len(u.Addresses) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	u.Addresses = append(u.Addresses[:index], u.Addresses[index+1:]...)
	return nil
}

// SetDefaultAddress promotes the address at index and demotes the rest.
func (u *User) SetDefaultAddress(index int) error {
	if index < 0 || index >= len(u.Addresses) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	for i := range u.Addresses {
		u.Addresses[i].IsDefault = i == index
	}
	return nil
}

// DefaultAddress returns a copy of the default address, or nil when the book
// has none.
func (u *User) DefaultAddress() *types.Address {
	for _, address := range u.Addresses {
		if address.IsDefault {
			found := address
			return &found
		}
	}
	return nil
}

// AddPaymentMethod appends a payment method. A new default demotes every
// existing one.
func (u *User) AddPaymentMethod(method types.PaymentMethod) {
	if method.IsDefault {
		for i := range u.PaymentMethods {
			u.PaymentMethods[i].IsDefault = false
		}
	}
	u.PaymentMethods = append(u.PaymentMethods, method)
}

// RemovePaymentMethod drops the payment method at index.
func (u *User) RemovePaymentMethod(index int) error {
	if index < 0 || index >= len(u.PaymentMethods) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
	}
	u.PaymentMethods = append(u.PaymentMethods[:index], u.PaymentMethods[index+1:]...)
	return nil
}

// SetDefaultPaymentMethod promotes the payment method at index.
func (u *User) SetDefaultPaymentMethod(index int) error {
	if index < 0 || index >= len(u.PaymentMethods) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
	}
	for i := range u.PaymentMethods {
		u.PaymentMethods[i].IsDefault = i == index
	}
	return nil
}

// DefaultPaymentMethod returns a copy of the default payment method, or nil.
func (u *User) DefaultPaymentMethod() *types.PaymentMethod {
	for _, method := range u.PaymentMethods {
		if method.IsDefault {
			found := method
			return &found
		}
	}
	return nil
}
