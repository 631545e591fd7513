package types

import "strings"

// Address is a user-owned shipping or billing address. Street2 is optional;
// IsDefault participates in the single-default invariant on the user aggregate.
type Address struct {
	Street    string  `json:"street" validate:"required"`
	Street2   *string `json:"street2,omitempty"`
	City      string  `json:"city" validate:"required"`
	State     string  `json:"state" validate:"required"`
	ZipCode   string  `json:"zip_code" validate:"required"`
	Country   string  `json:"country" validate:"required,iso3166_1_alpha2"`
	IsDefault bool    `json:"is_default"`
}

// IsZero reports whether no identifying field is set.
func (a Address) IsZero() bool {
	return strings.TrimSpace(a.Street) == "" &&
		strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.State) == "" &&
		strings.TrimSpace(a.ZipCode) == ""
}

// Equal compares the locating fields, ignoring the default flag.
func (a Address) Equal(other Address) bool {
	sameStreet2 := (a.Street2 == nil && other.Street2 == nil) ||
		(a.Street2 != nil && other.Street2 != nil && *a.Street2 == *other.Street2)
	return a.Street == other.Street &&
		sameStreet2 &&
		a.City == other.City &&
		a.State == other.State &&
		a.ZipCode == other.ZipCode &&
		a.Country == other.Country
}
