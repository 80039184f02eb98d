package app

import (
	"context"
	"errors"
	"time"

	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/repository"
	"github.com/tienda-tcg/internal/service"
)

// SweeperService 定期回收空闲的会话购物车
type SweeperService struct {
	name      string
	sessions  *service.CartSessions
	repo      repository.CartSessionRepository
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewSweeperService 创建会话回收服务；retention 大于 0 时同时清理过期的会话映射
func NewSweeperService(sessions *service.CartSessions, repo repository.CartSessionRepository, retention time.Duration) *SweeperService {
	interval := time.Minute
	if sessions != nil {
		if idle := sessions.IdleTimeout() / 4; idle > 0 && idle < interval {
			interval = idle
		}
	}
	return &SweeperService{
		name:      "cart_sweeper",
		sessions:  sessions,
		repo:      repo,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

// Name 服务名称
func (s *SweeperService) Name() string {
	if s == nil || s.name == "" {
		return "cart_sweeper"
	}
	return s.name
}

// Start 启动回收循环，ctx 结束时返回
func (s *SweeperService) Start(ctx context.Context) error {
	if s == nil || s.sessions == nil {
		return errors.New("cart sweeper not initialized")
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

// Stop 停止服务
func (s *SweeperService) Stop(ctx context.Context) error {
	_ = ctx
	return nil
}

func (s *SweeperService) sweepOnce() {
	now := s.now()
	s.sessions.Sweep(now)
	if s.repo == nil || s.retention <= 0 {
		return
	}
	removed, err := s.repo.DeleteUpdatedBefore(now.Add(-s.retention))
	if err != nil {
		logger.Warnw("cart_sweeper_purge_failed", "error", err)
		return
	}
	if removed > 0 {
		logger.Infow("cart_sweeper_purged", "removed", removed)
	}
}
