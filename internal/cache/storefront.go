package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tienda-tcg/internal/models"
)

const cartSessionCacheTTL = 24 * time.Hour

// CollectionPage 集合首页快照（未按标签过滤）
type CollectionPage struct {
	Handle   string               `json:"handle"`
	Title    string               `json:"title"`
	Found    bool                 `json:"found"`
	Products []models.ProductCard `json:"products"`
	CachedAt int64                `json:"cached_at"`
}

// CollectionKey 集合缓存 key
func CollectionKey(handle string) string {
	return fmt.Sprintf("catalog:collection:%s", strings.ToLower(strings.TrimSpace(handle)))
}

// CartSessionKey 会话购物车 ID 缓存 key
func CartSessionKey(sessionKey string) string {
	return fmt.Sprintf("cart:session:%s", strings.TrimSpace(sessionKey))
}

// GetCollectionPage 读取集合缓存
func GetCollectionPage(ctx context.Context, handle string) (*CollectionPage, bool, error) {
	var page CollectionPage
	hit, err := GetJSON(ctx, CollectionKey(handle), &page)
	if err != nil || !hit {
		return nil, false, err
	}
	return &page, true, nil
}

// SetCollectionPage 写入集合缓存
func SetCollectionPage(ctx context.Context, page *CollectionPage, ttl time.Duration) error {
	if page == nil || ttl <= 0 {
		return nil
	}
	if page.CachedAt == 0 {
		page.CachedAt = time.Now().Unix()
	}
	return SetJSON(ctx, CollectionKey(page.Handle), page, ttl)
}

// GetCartSessionID 读取会话对应的购物车 ID
func GetCartSessionID(ctx context.Context, sessionKey string) (string, bool, error) {
	var cartID string
	hit, err := GetJSON(ctx, CartSessionKey(sessionKey), &cartID)
	if err != nil || !hit {
		return "", false, err
	}
	return cartID, cartID != "", nil
}

// SetCartSessionID 写入会话对应的购物车 ID
func SetCartSessionID(ctx context.Context, sessionKey, cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return nil
	}
	return SetJSON(ctx, CartSessionKey(sessionKey), cartID, cartSessionCacheTTL)
}
