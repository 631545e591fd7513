// Package catalog exposes read-only product lookups to the storefront core.
// Products are owned by the catalog side of the system; the core only snapshots
// them into carts and orders.
package catalog

import (
	"context"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is authoritative for every computation;
// OriginalPrice exists for discount display only.
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Category      string           `json:"category"`
	IsNew         bool             `json:"is_new"`
	IsSale        bool             `json:"is_sale"`
	Rating        types.Rating     `json:"rating"`
	Tags          []string         `json:"tags,omitempty"`
	Image         string           `json:"image"`
}

// Clone returns a deep copy decoupled from the catalog's live entry.
func (p Product) Clone() Product {
	clone := p
	if p.OriginalPrice != nil {
		original := p.OriginalPrice.Copy()
		clone.OriginalPrice = &original
	}
	if p.Tags != nil {
		clone.Tags = append([]string(nil), p.Tags...)
	}
	return clone
}

// Provider resolves products by id. Implementations return a NOT_FOUND coded
// error for unknown ids, never a nil product with nil error.
type Provider interface {
	GetProduct(ctx context.Context, id int) (*Product, error)
}
