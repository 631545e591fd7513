package cart

import (
	"encoding/json"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/catalog"
	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
)

// cartRecord is the serialized form stored through the persistence port.
// Derived values (counts, subtotals, emptiness) are never stored; they are
// recomputed from the reconstructed lines.
type cartRecord struct {
	ID     string       `json:"id"`
	UserID *int         `json:"user_id,omitempty"`
	Items  []itemRecord `json:"items"`
}

type itemRecord struct {
	ID        string          `json:"id"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	VariantID *int            `json:"variant_id,omitempty"`
	Color     *string         `json:"color,omitempty"`
	Size      *string         `json:"size,omitempty"`
}

func (c *Cart) toRecord() (storage.Record, error) {
	record := cartRecord{ID: c.ID, UserID: c.UserID, Items: make([]itemRecord, 0, len(c.Items))}
	for _, item := range c.Items {
		record.Items = append(record.Items, itemRecord{
			ID:        item.ID,
			Product:   item.Product,
			Quantity:  item.Quantity,
			VariantID: item.VariantID,
			Color:     item.Color,
			Size:      item.Size,
		})
	}
	return storage.Marshal(record)
}

func cartFromRecord(raw storage.Record) (*Cart, error) {
	var record cartRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	cart := &Cart{ID: record.ID, UserID: record.UserID}
	for _, item := range record.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		cart.Items = append(cart.Items, &Item{
			ID:        item.ID,
			Product:   item.Product,
			Quantity:  quantity,
			VariantID: item.VariantID,
			Color:     item.Color,
			Size:      item.Size,
		})
	}
	return cart, nil
}
