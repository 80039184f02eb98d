package service

import (
	"context"
	"strings"

	"github.com/tienda-tcg/internal/cache"
	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/repository"
)

// SessionCartIDStore 会话购物车 ID 存储：数据库为准，Redis 旁路缓存
type SessionCartIDStore struct {
	repo       repository.CartSessionRepository
	sessionKey string
}

// NewSessionCartIDStore 创建会话 ID 存储
func NewSessionCartIDStore(repo repository.CartSessionRepository, sessionKey string) *SessionCartIDStore {
	return &SessionCartIDStore{repo: repo, sessionKey: strings.TrimSpace(sessionKey)}
}

// SessionCartIDStoreFactory 供 CartSessions 使用的工厂
func SessionCartIDStoreFactory(repo repository.CartSessionRepository) CartIDStoreFactory {
	return func(sessionKey string) CartIDStore {
		return NewSessionCartIDStore(repo, sessionKey)
	}
}

// Load 读取购物车 ID，未保存过返回空串
func (s *SessionCartIDStore) Load(ctx context.Context) (string, error) {
	if s.sessionKey == "" {
		return "", nil
	}
	cartID, hit, err := cache.GetCartSessionID(ctx, s.sessionKey)
	if err != nil {
		logger.Warnw("cart_session_cache_get_failed", "session_key", s.sessionKey, "error", err)
	} else if hit {
		return cartID, nil
	}
	if s.repo == nil {
		return "", nil
	}
	row, err := s.repo.GetByKey(s.sessionKey)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", nil
	}
	if err := cache.SetCartSessionID(ctx, s.sessionKey, row.CartID); err != nil {
		logger.Warnw("cart_session_cache_set_failed", "session_key", s.sessionKey, "error", err)
	}
	return row.CartID, nil
}

// Save 保存购物车 ID
func (s *SessionCartIDStore) Save(ctx context.Context, cartID string) error {
	if s.sessionKey == "" {
		return nil
	}
	if s.repo != nil {
		if err := s.repo.SaveCartID(s.sessionKey, cartID); err != nil {
			return err
		}
	}
	if err := cache.SetCartSessionID(ctx, s.sessionKey, cartID); err != nil {
		logger.Warnw("cart_session_cache_set_failed", "session_key", s.sessionKey, "error", err)
	}
	return nil
}

// Touch 刷新数据库中映射的最近使用时间
func (s *SessionCartIDStore) Touch(context.Context) error {
	if s.sessionKey == "" || s.repo == nil {
		return nil
	}
	return s.repo.Touch(s.sessionKey)
}
