package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartRecordRoundTripRestoresDerivedState(t *testing.T) {
	t.Parallel()

	c := New(intPtr(4))
	c.AddItem(testProduct(1, "12.00"), 2, ItemOptions{Color: strPtr("black")})
	c.AddItem(testProduct(2, "3.50"), 1, ItemOptions{})

	record, err := c.toRecord()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, err := cartFromRecord(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if restored.ID != c.ID {
		t.Fatalf("cart id lost in round trip")
	}
	if restored.UserID == nil || *restored.UserID != 4 {
		t.Fatalf("owner lost in round trip")
	}
	if restored.IsEmpty() {
		t.Fatalf("emptiness must be recomputed from restored lines")
	}
	if restored.ItemCount() != 3 {
		t.Fatalf("expected item count 3, got %d", restored.ItemCount())
	}
	if !restored.Subtotal().Equal(decimal.RequireFromString("27.50")) {
		t.Fatalf("unexpected subtotal %s", restored.Subtotal())
	}
}

func TestCartFromRecordFloorsStoredQuantities(t *testing.T) {
	t.Parallel()

	restored, err := cartFromRecord([]byte(`{"id":"c1","items":[{"id":"i1","product":{"id":1,"price":"10"},"quantity":0}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Items[0].Quantity != 1 {
		t.Fatalf("stored zero quantity must be floored to 1, got %d", restored.Items[0].Quantity)
	}
}
