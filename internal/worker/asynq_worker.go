package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/provider"
	"github.com/tienda-tcg/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCatalogWarm, c.handleCatalogWarm)
}

func (c *Consumer) handleCatalogWarm(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_catalog_warm_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCatalogWarmPayload(task)
	if err != nil {
		logger.Warnw("worker_catalog_warm_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	handle := strings.TrimSpace(payload.Handle)
	if handle == "" {
		logger.Debugw("worker_catalog_warm_skip_invalid_payload")
		return nil
	}
	if c.CatalogService == nil {
		logger.Debugw("worker_catalog_warm_skip_no_service", "handle", handle)
		return nil
	}
	count, err := c.CatalogService.WarmCollection(ctx, handle)
	if err != nil {
		logger.Warnw("worker_catalog_warm_failed", "handle", handle, "error", err)
		return err
	}
	logger.Debugw("worker_catalog_warm_done", "handle", handle, "products", count)
	return nil
}
