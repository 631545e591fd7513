package storage

import (
	"context"
	"testing"
)

func TestMemoryStoreLoadUnknownKeyIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	records, err := store.Load(context.Background(), "cart_missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(records))
	}
}

func TestMemoryStoreSaveReplacesCollection(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "cart_1", []Record{Record(`{"a":1}`), Record(`{"b":2}`)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save(ctx, "cart_1", []Record{Record(`{"c":3}`)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := store.Load(ctx, "cart_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || string(records[0]) != `{"c":3}` {
		t.Fatalf("unexpected collection %v", records)
	}
}

func TestMemoryStoreCopiesOnLoad(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "cart_1", []Record{Record(`{"a":1}`)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, _ := store.Load(ctx, "cart_1")
	records[0][0] = 'X'

	reloaded, _ := store.Load(ctx, "cart_1")
	if string(reloaded[0]) != `{"a":1}` {
		t.Fatalf("stored record was mutated through a loaded copy: %s", reloaded[0])
	}
}
