package queue

import (
	"encoding/json"

	"github.com/tienda-tcg/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCatalogWarm 集合缓存预热任务
	TaskCatalogWarm = constants.TaskCatalogWarm
)

// CatalogWarmPayload 集合预热任务载荷
type CatalogWarmPayload struct {
	Handle string `json:"handle"`
}

// NewCatalogWarmTask 创建集合预热任务
func NewCatalogWarmTask(payload CatalogWarmPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogWarm, body), nil
}

// ParseCatalogWarmPayload 解析集合预热任务载荷
func ParseCatalogWarmPayload(task *asynq.Task) (CatalogWarmPayload, error) {
	var payload CatalogWarmPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
