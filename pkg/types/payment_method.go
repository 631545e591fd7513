package types

// PaymentMethod is a vaulted payment instrument reference. Only display
// metadata is kept; the core never charges anything.
type PaymentMethod struct {
	Type       string  `json:"type" validate:"required,oneof=card paypal bank"`
	LastFour   *string `json:"last_four,omitempty" validate:"omitempty,len=4,numeric"`
	ExpiryDate *string `json:"expiry_date,omitempty" validate:"omitempty,min=4"`
	IsDefault  bool    `json:"is_default"`
}
