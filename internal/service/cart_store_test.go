package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/tienda-tcg/internal/shopify"
)

func newTestCartStore(t *testing.T) (*CartStore, *fakeRemote, *memoryIDStore) {
	t.Helper()
	remote := newFakeRemote()
	remote.addVariant("variant-A", "Default Title", "Booster Box Scarlet", "120.00", intPtr(3))
	remote.addVariant("variant-B", "Holo", "Default Title", "4.50", nil)
	ids := &memoryIDStore{}
	return NewCartStore(remote, ids, CartDefaults{MaxQuantity: 1, Currency: "EUR"}), remote, ids
}

func TestCartStoreAddCreatesCartAndPersistsID(t *testing.T) {
	store, remote, ids := newTestCartStore(t)
	ctx := context.Background()

	if store.State() != CartStateUninitialized {
		t.Fatalf("new store should be uninitialized")
	}
	cart, err := store.Add(ctx, "variant-A", 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if remote.callCount("create") != 1 || remote.callCount("add") != 0 {
		t.Fatalf("expected one create mutation, got create=%d add=%d", remote.callCount("create"), remote.callCount("add"))
	}
	if ids.cartID == "" || ids.cartID != store.CartID() {
		t.Fatalf("cart id should be persisted, got %q vs %q", ids.cartID, store.CartID())
	}
	if store.State() != CartStateActive {
		t.Fatalf("store should be active after create")
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 || cart.Lines[0].VariantID != "variant-A" {
		t.Fatalf("unexpected cart lines: %+v", cart.Lines)
	}
	if cart.TotalQuantity != 1 {
		t.Fatalf("total quantity want 1 got %d", cart.TotalQuantity)
	}
}

func TestCartStoreAddRejectsAboveStockWithoutNetwork(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "variant-A", 3); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}
	before := store.Snapshot()
	calls := remote.totalCalls()

	cart, err := store.Add(ctx, "variant-A", 1)
	var limit *StockLimitError
	if !errors.As(err, &limit) || !errors.Is(err, ErrStockLimit) {
		t.Fatalf("expected stock limit error, got %v", err)
	}
	if limit.MaxQuantity != 3 || limit.Title != "Booster Box Scarlet" {
		t.Fatalf("unexpected limit detail: %+v", limit)
	}
	if remote.totalCalls() != calls {
		t.Fatalf("stock rejection must not call the network")
	}
	if !reflect.DeepEqual(before, cart) {
		t.Fatalf("cart view should be unchanged")
	}
}

func TestCartStoreAddMergesExistingLine(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "variant-A", 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := store.Add(ctx, "variant-A", 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if remote.callCount("add") != 1 {
		t.Fatalf("expected add-line mutation, got %d", remote.callCount("add"))
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged line with quantity 3, got %+v", cart.Lines)
	}
	if cart.Lines[0].AvailableToAdd != 0 {
		t.Fatalf("available to add should be 0 at ceiling, got %d", cart.Lines[0].AvailableToAdd)
	}
}

func TestCartStoreUpdateToZeroRemovesLine(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	ctx := context.Background()

	cart, err := store.Add(ctx, "variant-A", 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	lineID := cart.Lines[0].ID
	getsBefore := remote.callCount("get")

	cart, err = store.UpdateQuantity(ctx, lineID, 0)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if remote.callCount("remove") != 1 || remote.callCount("update") != 0 {
		t.Fatalf("expected remove mutation, got remove=%d update=%d", remote.callCount("remove"), remote.callCount("update"))
	}
	if remote.callCount("get") != getsBefore+1 {
		t.Fatalf("expected refresh after remove")
	}
	if cart.FindLine(lineID) != nil {
		t.Fatalf("line %s should be gone", lineID)
	}
	if cart.TotalQuantity != 0 {
		t.Fatalf("total quantity want 0 got %d", cart.TotalQuantity)
	}
}

func TestCartStoreUpdateQuantity(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	ctx := context.Background()

	cart, _ := store.Add(ctx, "variant-A", 1)
	lineID := cart.Lines[0].ID

	cart, err := store.UpdateQuantity(ctx, lineID, 2)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cart.FindLine(lineID).Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", cart.FindLine(lineID).Quantity)
	}

	calls := remote.totalCalls()
	if _, err := store.UpdateQuantity(ctx, lineID, 4); !errors.Is(err, ErrStockLimit) {
		t.Fatalf("expected stock limit, got %v", err)
	}
	if remote.totalCalls() != calls {
		t.Fatalf("stock rejection must not call the network")
	}
}

func TestCartStoreNoopsWithoutCart(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	ctx := context.Background()

	if cart, err := store.UpdateQuantity(ctx, "line-1", 2); err != nil || cart != nil {
		t.Fatalf("update without cart should be a no-op, got %+v %v", cart, err)
	}
	if cart, err := store.Remove(ctx, "line-1"); err != nil || cart != nil {
		t.Fatalf("remove without cart should be a no-op, got %+v %v", cart, err)
	}
	if cart, err := store.Refresh(ctx); err != nil || cart != nil {
		t.Fatalf("refresh without cart should be a no-op, got %+v %v", cart, err)
	}
	if remote.totalCalls() != 0 {
		t.Fatalf("no-ops must not call the network, got %d calls", remote.totalCalls())
	}

	if _, err := store.Add(ctx, "variant-A", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	calls := remote.totalCalls()
	if _, err := store.UpdateQuantity(ctx, "unknown-line", 2); err != nil {
		t.Fatalf("unknown line should be a no-op, got %v", err)
	}
	if remote.totalCalls() != calls {
		t.Fatalf("unknown line must not call the network")
	}
}

func TestCartStoreRefreshIsIdempotent(t *testing.T) {
	store, _, _ := newTestCartStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "variant-A", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := store.Add(ctx, "variant-B", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	first, err := store.Refresh(ctx)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	second, err := store.Refresh(ctx)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("refresh should be idempotent:\n%+v\n%+v", first, second)
	}
	if first.TotalQuantity != first.SumQuantity() || first.TotalQuantity != 3 {
		t.Fatalf("total quantity should equal line sum, got %d", first.TotalQuantity)
	}
}

func TestCartStoreMutationFailureKeepsView(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "variant-A", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	before := store.Snapshot()
	remote.failNext = shopify.ErrRequestFailed

	cart, err := store.Add(ctx, "variant-B", 1)
	if !errors.Is(err, shopify.ErrRequestFailed) {
		t.Fatalf("expected request failure, got %v", err)
	}
	if !reflect.DeepEqual(before, cart) || store.State() != CartStateActive {
		t.Fatalf("failed mutation must leave view and state unchanged")
	}
}

func TestCartStoreLoadsPersistedID(t *testing.T) {
	remote := newFakeRemote()
	remote.addVariant("variant-A", "Default Title", "Booster Box", "10.00", intPtr(5))
	seeded, _ := remote.CreateCart(context.Background(), []shopify.CartLineInput{{MerchandiseID: "variant-A", Quantity: 2}})
	ids := &memoryIDStore{cartID: seeded.ID}

	store := NewCartStore(remote, ids, CartDefaults{})
	cart, err := store.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if cart == nil || cart.ID != seeded.ID || cart.TotalQuantity != 2 {
		t.Fatalf("expected persisted cart, got %+v", cart)
	}
	if ids.saves != 0 {
		t.Fatalf("loading must not re-save the id")
	}

	ids.loadErr = errors.New("db down")
	fresh := NewCartStore(remote, ids, CartDefaults{})
	if _, err := fresh.Add(context.Background(), "variant-A", 1); !errors.Is(err, ErrCartIDLoadFailed) {
		t.Fatalf("expected load failure, got %v", err)
	}
	if remote.callCount("create") != 1 {
		t.Fatalf("load failure must not create a second cart")
	}
}

func TestCartStoreRefreshMissingRemoteCart(t *testing.T) {
	remote := newFakeRemote()
	ids := &memoryIDStore{cartID: "gid://shopify/Cart/expired"}
	store := NewCartStore(remote, ids, CartDefaults{})

	if _, err := store.Refresh(context.Background()); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected cart not found, got %v", err)
	}
	if store.CartID() != "gid://shopify/Cart/expired" {
		t.Fatalf("cart id must be kept")
	}
}

func TestCartStoreSerializesMutations(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	ctx := context.Background()
	remote.addVariant("variant-B", "Holo", "Default Title", "4.50", intPtr(100))
	if _, err := store.Add(ctx, "variant-B", 1); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}
	remote.hook = func() { time.Sleep(2 * time.Millisecond) }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Add(ctx, "variant-B", 1); err != nil {
				t.Errorf("concurrent add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	remote.mu.Lock()
	maxSeen := remote.maxSeen
	remote.mu.Unlock()
	if maxSeen != 1 {
		t.Fatalf("expected one call in flight at a time, saw %d", maxSeen)
	}
	cart := store.Snapshot()
	if cart.TotalQuantity != 9 {
		t.Fatalf("expected 9 units after concurrent adds, got %d", cart.TotalQuantity)
	}
}

func TestCartStoreValidatesInput(t *testing.T) {
	store, remote, _ := newTestCartStore(t)
	if _, err := store.Add(context.Background(), " ", 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := store.Add(context.Background(), "variant-A", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if remote.totalCalls() != 0 {
		t.Fatalf("invalid input must not call the network")
	}
}

// touchingIDStore 记录 Touch 次数的 ID 存储
type touchingIDStore struct {
	memoryIDStore
	touches int
}

func (m *touchingIDStore) Touch(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touches++
	return nil
}

func TestCartStoreTouchesPersistedID(t *testing.T) {
	remote := newFakeRemote()
	remote.addVariant("variant-A", "Default Title", "Booster", "1.00", intPtr(5))
	ctx := context.Background()

	fresh := &touchingIDStore{}
	store := NewCartStore(remote, fresh, CartDefaults{})
	if _, err := store.Refresh(ctx); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if fresh.touches != 0 {
		t.Fatalf("no cart id means nothing to touch, got %d", fresh.touches)
	}
	if _, err := store.Add(ctx, "variant-A", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if fresh.touches != 0 {
		t.Fatalf("saving a new id already marks it used, got %d touches", fresh.touches)
	}

	persisted := &touchingIDStore{memoryIDStore: memoryIDStore{cartID: fresh.cartID}}
	restored := NewCartStore(remote, persisted, CartDefaults{})
	for i := 0; i < 3; i++ {
		if _, err := restored.Refresh(ctx); err != nil {
			t.Fatalf("refresh %d failed: %v", i, err)
		}
	}
	if persisted.touches != 1 {
		t.Fatalf("persisted id should be touched once per interval, got %d", persisted.touches)
	}

	restored.mu.Lock()
	restored.lastIDTouch = time.Now().Add(-2 * idTouchInterval)
	restored.mu.Unlock()
	if _, err := restored.Add(ctx, "variant-A", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if persisted.touches != 2 {
		t.Fatalf("id should be touched again after the interval, got %d", persisted.touches)
	}
}
