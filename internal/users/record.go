package users

import (
	"encoding/json"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
)

// userRecord is the serialized profile. The books are stored verbatim; the
// single-default invariant is re-established on load in case an older writer
// left more than one flag set.
type userRecord struct {
	ID             int                   `json:"id"`
	Email          string                `json:"email"`
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
	Addresses      []types.Address       `json:"addresses"`
	PaymentMethods []types.PaymentMethod `json:"payment_methods"`
}

func (u *User) toRecord() (storage.Record, error) {
	return storage.Marshal(userRecord{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Addresses:      u.Addresses,
		PaymentMethods: u.PaymentMethods,
	})
}

func userFromRecord(raw storage.Record) (*User, error) {
	var record userRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	user := &User{
		ID:             record.ID,
		Email:          record.Email,
		FirstName:      record.FirstName,
		LastName:       record.LastName,
		Addresses:      record.Addresses,
		PaymentMethods: record.PaymentMethods,
	}
	keepFirstDefault(user)
	return user, nil
}

// keepFirstDefault demotes every default flag after the first one in each
// book, restoring the at-most-one invariant for records written before the
// flag was policed.
func keepFirstDefault(user *User) {
	seen := false
	for i := range user.Addresses {
		if user.Addresses[i].IsDefault {
			if seen {
				user.Addresses[i].IsDefault = false
			}
			seen = true
		}
	}
	seen = false
	for i := range user.PaymentMethods {
		if user.PaymentMethods[i].IsDefault {
			if seen {
				user.PaymentMethods[i].IsDefault = false
			}
			seen = true
		}
	}
}
