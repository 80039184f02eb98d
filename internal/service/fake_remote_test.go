package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tienda-tcg/internal/shopify"
)

type fakeVariant struct {
	title    string
	product  string
	price    string
	quantity *int
}

type fakeLine struct {
	id        string
	variantID string
	quantity  int
}

// fakeRemote 内存中的远端购物车
type fakeRemote struct {
	mu       sync.Mutex
	variants map[string]fakeVariant
	carts    map[string][]fakeLine
	seq      int
	calls    map[string]int

	failNext error
	failGet  error
	inFlight int
	maxSeen  int
	hook     func()
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		variants: map[string]fakeVariant{},
		carts:    map[string][]fakeLine{},
		calls:    map[string]int{},
	}
}

func intPtr(v int) *int { return &v }

func (f *fakeRemote) addVariant(id, title, product, price string, quantity *int) {
	f.variants[id] = fakeVariant{title: title, product: product, price: price, quantity: quantity}
}

func (f *fakeRemote) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeRemote) enter(name string) (func(), error) {
	f.mu.Lock()
	f.calls[name]++
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	hook := f.hook
	var err error
	if name != "get" && f.failNext != nil {
		err = f.failNext
		f.failNext = nil
	}
	if name == "get" && f.failGet != nil {
		err = f.failGet
	}
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}, err
}

func (f *fakeRemote) snapshot(cartID string) *shopify.Cart {
	lines, ok := f.carts[cartID]
	if !ok {
		return nil
	}
	cart := &shopify.Cart{ID: cartID, CheckoutURL: "https://shop.example.com/checkout/" + cartID}
	for _, line := range lines {
		v := f.variants[line.variantID]
		cart.TotalQuantity += line.quantity
		cart.Lines.Edges = append(cart.Lines.Edges, shopify.Edge[shopify.CartLine]{Node: shopify.CartLine{
			ID:       line.id,
			Quantity: line.quantity,
			Merchandise: shopify.ProductVariant{
				ID:                line.variantID,
				Title:             v.title,
				QuantityAvailable: v.quantity,
				Price:             &shopify.MoneyV2{Amount: v.price, CurrencyCode: "EUR"},
				Product:           &shopify.VariantProduct{Title: v.product},
			},
		}})
	}
	return cart
}

func (f *fakeRemote) addLinesLocked(cartID string, lines []shopify.CartLineInput) error {
	for _, in := range lines {
		if _, ok := f.variants[in.MerchandiseID]; !ok {
			return fmt.Errorf("%w: unknown merchandise", shopify.ErrUserErrors)
		}
		merged := false
		for i := range f.carts[cartID] {
			if f.carts[cartID][i].variantID == in.MerchandiseID {
				f.carts[cartID][i].quantity += in.Quantity
				merged = true
			}
		}
		if !merged {
			f.seq++
			f.carts[cartID] = append(f.carts[cartID], fakeLine{id: fmt.Sprintf("line-%d", f.seq), variantID: in.MerchandiseID, quantity: in.Quantity})
		}
	}
	return nil
}

func (f *fakeRemote) CreateCart(ctx context.Context, lines []shopify.CartLineInput) (*shopify.Cart, error) {
	done, err := f.enter("create")
	defer done()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("gid://shopify/Cart/%d", f.seq)
	f.carts[id] = nil
	if err := f.addLinesLocked(id, lines); err != nil {
		return nil, err
	}
	return f.snapshot(id), nil
}

func (f *fakeRemote) GetCart(ctx context.Context, cartID string) (*shopify.Cart, error) {
	done, err := f.enter("get")
	defer done()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(cartID), nil
}

func (f *fakeRemote) AddCartLines(ctx context.Context, cartID string, lines []shopify.CartLineInput) (*shopify.Cart, error) {
	done, err := f.enter("add")
	defer done()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[cartID]; !ok {
		return nil, errors.New("cart missing")
	}
	if err := f.addLinesLocked(cartID, lines); err != nil {
		return nil, err
	}
	return f.snapshot(cartID), nil
}

func (f *fakeRemote) UpdateCartLines(ctx context.Context, cartID string, lines []shopify.CartLineUpdateInput) (*shopify.Cart, error) {
	done, err := f.enter("update")
	defer done()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range lines {
		kept := f.carts[cartID][:0]
		for _, line := range f.carts[cartID] {
			if line.id == in.ID {
				line.quantity = in.Quantity
			}
			if line.quantity > 0 {
				kept = append(kept, line)
			}
		}
		f.carts[cartID] = kept
	}
	return f.snapshot(cartID), nil
}

func (f *fakeRemote) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error) {
	done, err := f.enter("remove")
	defer done()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	remove := map[string]bool{}
	for _, id := range lineIDs {
		remove[id] = true
	}
	kept := f.carts[cartID][:0]
	for _, line := range f.carts[cartID] {
		if !remove[line.id] {
			kept = append(kept, line)
		}
	}
	f.carts[cartID] = kept
	return f.snapshot(cartID), nil
}

// memoryIDStore 内存 ID 存储
type memoryIDStore struct {
	mu      sync.Mutex
	cartID  string
	saves   int
	loadErr error
}

func (m *memoryIDStore) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cartID, m.loadErr
}

func (m *memoryIDStore) Save(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cartID = cartID
	m.saves++
	return nil
}
