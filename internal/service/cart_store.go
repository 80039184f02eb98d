package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/models"
	"github.com/tienda-tcg/internal/shopify"

	"go.uber.org/zap"
)

// CartAPI 远端购物车操作
type CartAPI interface {
	CreateCart(ctx context.Context, lines []shopify.CartLineInput) (*shopify.Cart, error)
	GetCart(ctx context.Context, cartID string) (*shopify.Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []shopify.CartLineInput) (*shopify.Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, lines []shopify.CartLineUpdateInput) (*shopify.Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error)
}

// CartIDStore 购物车 ID 的持久化读写
type CartIDStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, cartID string) error
}

// CartIDToucher 可选接口：标记持久化的购物车 ID 仍在使用
type CartIDToucher interface {
	Touch(ctx context.Context) error
}

// idTouchInterval 同一视图两次 Touch 的最小间隔
const idTouchInterval = time.Hour

// CartState 购物车状态
type CartState string

const (
	CartStateUninitialized CartState = "uninitialized"
	CartStateActive        CartState = "active"
)

// CartStore 单个会话的购物车视图
// 所有操作经 mu 串行化，每次变更后整体重新拉取远端购物车
type CartStore struct {
	mu       sync.Mutex
	api      CartAPI
	ids      CartIDStore
	defaults CartDefaults
	log      *zap.SugaredLogger

	loaded      bool
	cartID      string
	cart        *models.Cart
	lastIDTouch time.Time

	lastUsed atomic.Int64
}

// NewCartStore 创建购物车视图
func NewCartStore(api CartAPI, ids CartIDStore, defaults CartDefaults) *CartStore {
	s := &CartStore{
		api:      api,
		ids:      ids,
		defaults: defaults.normalized(),
		log:      logger.Named("cart_store"),
	}
	s.touch()
	return s
}

// Add 向购物车加入规格
func (s *CartStore) Add(ctx context.Context, variantID string, quantity int) (*models.Cart, error) {
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return s.Snapshot(), ErrInvalidInput
	}
	if quantity <= 0 {
		return s.Snapshot(), ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return s.cart.Clone(), err
	}
	s.ensureViewLocked(ctx)

	if line := s.cart.FindLineByVariant(variantID); line != nil && line.Quantity+quantity > line.MaxQuantity {
		return s.cart.Clone(), &StockLimitError{LineID: line.ID, Title: line.Title, MaxQuantity: line.MaxQuantity}
	}

	lines := []shopify.CartLineInput{{MerchandiseID: variantID, Quantity: quantity}}
	if s.cartID == "" {
		created, err := s.api.CreateCart(ctx, lines)
		if err != nil {
			s.log.Warnw("cart_store_create_failed", "variant_id", variantID, "error", err)
			return s.cart.Clone(), err
		}
		s.adoptLocked(ctx, created.ID)
		s.afterMutationLocked(ctx, created)
		return s.cart.Clone(), nil
	}

	updated, err := s.api.AddCartLines(ctx, s.cartID, lines)
	if err != nil {
		s.log.Warnw("cart_store_add_failed", "cart_id", s.cartID, "variant_id", variantID, "error", err)
		return s.cart.Clone(), err
	}
	s.afterMutationLocked(ctx, updated)
	return s.cart.Clone(), nil
}

// UpdateQuantity 设置行数量，<=0 时删除该行
func (s *CartStore) UpdateQuantity(ctx context.Context, lineID string, quantity int) (*models.Cart, error) {
	lineID = strings.TrimSpace(lineID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return s.cart.Clone(), err
	}
	if s.cartID == "" {
		return s.cart.Clone(), nil
	}
	s.ensureViewLocked(ctx)

	line := s.cart.FindLine(lineID)
	if line == nil {
		return s.cart.Clone(), nil
	}
	if quantity > line.MaxQuantity {
		return s.cart.Clone(), &StockLimitError{LineID: line.ID, Title: line.Title, MaxQuantity: line.MaxQuantity}
	}
	if quantity <= 0 {
		return s.removeLocked(ctx, lineID)
	}

	updated, err := s.api.UpdateCartLines(ctx, s.cartID, []shopify.CartLineUpdateInput{{ID: lineID, Quantity: quantity}})
	if err != nil {
		s.log.Warnw("cart_store_update_failed", "cart_id", s.cartID, "line_id", lineID, "error", err)
		return s.cart.Clone(), err
	}
	s.afterMutationLocked(ctx, updated)
	return s.cart.Clone(), nil
}

// Remove 删除行
func (s *CartStore) Remove(ctx context.Context, lineID string) (*models.Cart, error) {
	lineID = strings.TrimSpace(lineID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return s.cart.Clone(), err
	}
	if s.cartID == "" {
		return s.cart.Clone(), nil
	}
	if lineID == "" {
		return s.cart.Clone(), ErrInvalidInput
	}
	return s.removeLocked(ctx, lineID)
}

// Refresh 从远端整体替换本地视图
func (s *CartStore) Refresh(ctx context.Context) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return s.cart.Clone(), err
	}
	if s.cartID == "" {
		return nil, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return s.cart.Clone(), err
	}
	return s.cart.Clone(), nil
}

// Snapshot 当前视图的副本
func (s *CartStore) Snapshot() *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// CartID 当前购物车 ID，未创建时为空
func (s *CartStore) CartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartID
}

// State 当前状态
func (s *CartStore) State() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cartID == "" {
		return CartStateUninitialized
	}
	return CartStateActive
}

// IdleSince 距最近一次使用的时长
func (s *CartStore) IdleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastUsed.Load()))
}

func (s *CartStore) touch() {
	s.lastUsed.Store(time.Now().UnixNano())
}

func (s *CartStore) removeLocked(ctx context.Context, lineID string) (*models.Cart, error) {
	updated, err := s.api.RemoveCartLines(ctx, s.cartID, []string{lineID})
	if err != nil {
		s.log.Warnw("cart_store_remove_failed", "cart_id", s.cartID, "line_id", lineID, "error", err)
		return s.cart.Clone(), err
	}
	s.afterMutationLocked(ctx, updated)
	return s.cart.Clone(), nil
}

// ensureLoadedLocked 首次使用时读取持久化的购物车 ID，之后按间隔刷新其使用时间
func (s *CartStore) ensureLoadedLocked(ctx context.Context) error {
	if !s.loaded {
		if s.ids != nil {
			cartID, err := s.ids.Load(ctx)
			if err != nil {
				s.log.Errorw("cart_store_load_id_failed", "error", err)
				return errors.Join(ErrCartIDLoadFailed, err)
			}
			s.cartID = strings.TrimSpace(cartID)
		}
		s.loaded = true
	}
	s.keepIDAliveLocked(ctx)
	return nil
}

func (s *CartStore) keepIDAliveLocked(ctx context.Context) {
	toucher, ok := s.ids.(CartIDToucher)
	if !ok || s.cartID == "" {
		return
	}
	now := time.Now()
	if !s.lastIDTouch.IsZero() && now.Sub(s.lastIDTouch) < idTouchInterval {
		return
	}
	s.lastIDTouch = now
	if err := toucher.Touch(ctx); err != nil {
		s.log.Warnw("cart_store_touch_id_failed", "cart_id", s.cartID, "error", err)
	}
}

// ensureViewLocked 已有 ID 但尚无视图时先拉取一次，失败仅记录
func (s *CartStore) ensureViewLocked(ctx context.Context) {
	if s.cartID == "" || s.cart != nil {
		return
	}
	if err := s.refreshLocked(ctx); err != nil {
		s.log.Warnw("cart_store_initial_refresh_failed", "cart_id", s.cartID, "error", err)
	}
}

func (s *CartStore) adoptLocked(ctx context.Context, cartID string) {
	s.cartID = cartID
	if s.ids == nil {
		return
	}
	if err := s.ids.Save(ctx, cartID); err != nil {
		s.log.Errorw("cart_store_save_id_failed", "cart_id", cartID, "error", err)
		return
	}
	s.lastIDTouch = time.Now()
}

// afterMutationLocked 变更成功后重新拉取；拉取失败时采用变更返回的购物车
func (s *CartStore) afterMutationLocked(ctx context.Context, mutated *shopify.Cart) {
	err := s.refreshLocked(ctx)
	if err == nil {
		return
	}
	s.log.Warnw("cart_store_refresh_failed", "cart_id", s.cartID, "error", err)
	if mutated != nil {
		s.cart = NormalizeCart(mutated, s.defaults)
	}
}

func (s *CartStore) refreshLocked(ctx context.Context) error {
	raw, err := s.api.GetCart(ctx, s.cartID)
	if err != nil {
		return err
	}
	if raw == nil {
		return ErrCartNotFound
	}
	cart := NormalizeCart(raw, s.defaults)
	if raw.TotalQuantity != cart.TotalQuantity {
		s.log.Warnw("cart_store_total_mismatch", "cart_id", s.cartID, "remote_total", raw.TotalQuantity, "line_total", cart.TotalQuantity)
	}
	s.cart = cart
	return nil
}
