package service

import (
	"strings"
	"sync"
	"time"

	"github.com/tienda-tcg/internal/logger"
)

// CartIDStoreFactory 按会话 key 创建 ID 存储
type CartIDStoreFactory func(sessionKey string) CartIDStore

// CartSessions 按会话 key 持有 CartStore，空闲超时后回收
type CartSessions struct {
	mu       sync.Mutex
	stores   map[string]*CartStore
	api      CartAPI
	ids      CartIDStoreFactory
	defaults CartDefaults
	idle     time.Duration
}

// NewCartSessions 创建会话购物车注册表
func NewCartSessions(api CartAPI, ids CartIDStoreFactory, defaults CartDefaults, idle time.Duration) *CartSessions {
	if idle <= 0 {
		idle = time.Hour
	}
	return &CartSessions{
		stores:   make(map[string]*CartStore),
		api:      api,
		ids:      ids,
		defaults: defaults,
		idle:     idle,
	}
}

// Store 获取会话的购物车，不存在时创建
func (r *CartSessions) Store(sessionKey string) *CartStore {
	sessionKey = strings.TrimSpace(sessionKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.stores[sessionKey]; ok {
		store.touch()
		return store
	}
	var ids CartIDStore
	if r.ids != nil && sessionKey != "" {
		ids = r.ids(sessionKey)
	}
	store := NewCartStore(r.api, ids, r.defaults)
	r.stores[sessionKey] = store
	return store
}

// Sweep 回收空闲会话，返回回收数量
// 正在执行操作的视图不回收，保证同一会话只存在一个 CartStore
func (r *CartSessions) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, store := range r.stores {
		if store.IdleSince(now) < r.idle || !store.mu.TryLock() {
			continue
		}
		delete(r.stores, key)
		store.mu.Unlock()
		removed++
	}
	if removed > 0 {
		logger.Debugw("cart_sessions_swept", "removed", removed, "remaining", len(r.stores))
	}
	return removed
}

// Len 当前会话数
func (r *CartSessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// IdleTimeout 空闲回收阈值
func (r *CartSessions) IdleTimeout() time.Duration {
	return r.idle
}
