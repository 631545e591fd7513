package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/catalog"
	"github.com/Ahmad-Alshomaree/kulshy-backend/internal/storage"
	pkgerrors "github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type stubStore struct {
	data    map[string][]storage.Record
	saveErr error
	saves   int
}

func newStubStore() *stubStore {
	return &stubStore{data: map[string][]storage.Record{}}
}

func (s *stubStore) Load(ctx context.Context, key string) ([]storage.Record, error) {
	return s.data[key], nil
}

func (s *stubStore) Save(ctx context.Context, key string, records []storage.Record) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data[key] = records
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, store *stubStore, userID *int, products ...catalog.Product) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store:   store,
		Catalog: catalog.NewMemoryProvider(products...),
		UserID:  userID,
		Logger:  testLogger(),
	})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestServiceOwnerKeys(t *testing.T) {
	t.Parallel()

	if key := OwnerKey(nil); key != "cart_guest" {
		t.Fatalf("unexpected guest key %q", key)
	}
	if key := OwnerKey(intPtr(42)); key != "cart_42" {
		t.Fatalf("unexpected user key %q", key)
	}
}

func TestServiceAddItemPersists(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store, intPtr(7), testProduct(1, "10.00"))

	item, err := svc.AddItem(context.Background(), 1, 2, ItemOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
	if len(store.data["cart_7"]) != 1 {
		t.Fatalf("expected the cart collection to be persisted")
	}

	// A fresh service for the same owner must see the stored cart.
	reread := newTestService(t, store, intPtr(7), testProduct(1, "10.00"))
	count, err := reread.ItemCount(context.Background())
	if err != nil || count != 2 {
		t.Fatalf("expected restored count 2, got %d (%v)", count, err)
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStore(), nil)
	_, err := svc.AddItem(context.Background(), 404, 1, ItemOptions{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found from catalog port, got %v", err)
	}
}

func TestServiceReadsDoNotPersist(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store, nil, testProduct(1, "10.00"))

	if _, err := svc.AddItem(context.Background(), 1, 1, ItemOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saves := store.saves

	if _, err := svc.ItemCount(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Subtotal(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.HasProduct(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.saves != saves {
		t.Fatalf("read operations must not write; saves went from %d to %d", saves, store.saves)
	}
}

func TestServicePersistFailureInvalidatesCache(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store, nil, testProduct(1, "10.00"))

	if _, err := svc.AddItem(context.Background(), 1, 1, ItemOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.saveErr = errors.New("storage down")
	_, err := svc.AddItem(context.Background(), 1, 1, ItemOptions{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	// The failed mutation must not leak through the cache: the next read
	// reloads the last persisted state.
	store.saveErr = nil
	count, err := svc.ItemCount(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1 from persisted state, got %d", count)
	}
}

func TestServiceUpdateAndRemove(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store, nil, testProduct(1, "10.00"))
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, 1, ItemOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateItemQuantity(ctx, item.ID, 4)
	if err != nil || updated.Quantity != 4 {
		t.Fatalf("unexpected update result %v %v", updated, err)
	}

	subtotal, err := svc.Subtotal(ctx)
	if err != nil || !subtotal.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("unexpected subtotal %s (%v)", subtotal, err)
	}

	if err := svc.RemoveItem(ctx, "unknown"); err != nil {
		t.Fatalf("removal of unknown id must be a no-op, got %v", err)
	}
	if err := svc.RemoveItem(ctx, item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := svc.GetCart(ctx)
	if err != nil || !cart.IsEmpty() {
		t.Fatalf("expected empty cart after removal")
	}
}

func TestServiceClearKeepsOwnership(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store, intPtr(3), testProduct(1, "10.00"))
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, 2, ItemOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := svc.GetCart(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatalf("expected cleared cart")
	}
	if cart.UserID == nil || *cart.UserID != 3 {
		t.Fatalf("clear must not change the owner")
	}
}
