package catalog

import (
	"context"
	"sync"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
)

// MemoryProvider serves products from an in-process map. Lookups return deep
// copies so cart snapshots never alias catalog state.
type MemoryProvider struct {
	mu       sync.RWMutex
	products map[int]Product
}

// NewMemoryProvider builds a provider seeded with the given products.
func NewMemoryProvider(products ...Product) *MemoryProvider {
	byID := make(map[int]Product, len(products))
	for _, product := range products {
		byID[product.ID] = product.Clone()
	}
	return &MemoryProvider{products: byID}
}

// GetProduct returns a copy of the product or a NOT_FOUND error.
func (p *MemoryProvider) GetProduct(ctx context.Context, id int) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	product, ok := p.products[id]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	clone := product.Clone()
	return &clone, nil
}

// Put inserts or replaces a product.
func (p *MemoryProvider) Put(product Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.products[product.ID] = product.Clone()
}
