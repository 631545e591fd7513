// Package storage defines the persistence port used by the cart, order and
// user services: whole-collection reads and writes of serialized aggregate
// records keyed by owner. Writes are last-write-wins; callers that need
// concurrent mutation safety for one owner key must serialize access
// themselves.
package storage

import (
	"context"
	"encoding/json"
)

// Record is the plain serialized form of one aggregate entry.
type Record = json.RawMessage

// Store is the persistence port. Load returns an empty slice for unknown
// keys; Save replaces the full collection stored under key.
type Store interface {
	Load(ctx context.Context, key string) ([]Record, error)
	Save(ctx context.Context, key string, records []Record) error
}

// Marshal serializes a value into a Record.
func Marshal(value any) (Record, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return Record(data), nil
}
