package orders

import (
	"context"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/cart"
	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
)

type recordStore interface {
	Load(ctx context.Context, key string) ([]storage.Record, error)
	Save(ctx context.Context, key string, records []storage.Record) error
}

// cartSource is the slice of the cart service checkout needs: reading the
// current cart and clearing it once the order is recorded.
type cartSource interface {
	GetCart(ctx context.Context) (*cart.Cart, error)
	Clear(ctx context.Context) error
}

// addressSource resolves the owner's default shipping address when checkout
// does not supply one. Nil for guests, who must always supply an address.
type addressSource interface {
	DefaultAddress(ctx context.Context) (*types.Address, error)
}
