package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tienda-tcg/internal/config"
	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultWarmInterval = 5 * time.Minute
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	interval time.Duration
	handles  []string
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, catalog *config.CatalogConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	svc := &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
		interval: defaultWarmInterval,
	}
	if catalog != nil {
		svc.handles = normalizeHandles(catalog.WarmCollections)
		if catalog.WarmIntervalSeconds > 0 {
			svc.interval = time.Duration(catalog.WarmIntervalSeconds) * time.Second
		}
	}
	return svc, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if len(s.handles) > 0 && s.consumer != nil && s.consumer.Container != nil && s.consumer.QueueClient.Enabled() {
		go s.runCatalogWarmLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runCatalogWarmLoop(ctx context.Context) {
	runOnce := func() {
		for _, handle := range s.handles {
			err := s.consumer.QueueClient.EnqueueCatalogWarm(queue.CatalogWarmPayload{Handle: handle}, s.interval)
			if err != nil {
				logger.Warnw("worker_catalog_warm_enqueue_failed", "handle", handle, "error", err)
			}
		}
	}
	runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func normalizeHandles(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	handles := make([]string, 0, len(raw))
	for _, item := range raw {
		handle := strings.ToLower(strings.TrimSpace(item))
		if handle == "" {
			continue
		}
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		handles = append(handles, handle)
	}
	return handles
}
