package queue

import (
	"encoding/json"

	"github.com/pricepulse/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskPriceDropAlert 降价提醒任务
const TaskPriceDropAlert = constants.TaskPriceDropAlert

// PriceDropAlertPayload 降价提醒任务载荷
type PriceDropAlertPayload struct {
	ProductID uint   `json:"product_id"`
	OldPrice  string `json:"old_price"`
	NewPrice  string `json:"new_price"`
}

// NewPriceDropAlertTask 构建降价提醒任务
func NewPriceDropAlertTask(payload PriceDropAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPriceDropAlert, data), nil
}
