package worker

import (
	"context"
	"encoding/json"

	"github.com/pricepulse/internal/logger"
	"github.com/pricepulse/internal/models"
	"github.com/pricepulse/internal/provider"
	"github.com/pricepulse/internal/queue"

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
	mux.HandleFunc(queue.TaskPriceDropAlert, c.handlePriceDropAlert)
}

func (c *Consumer) handlePriceDropAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_price_drop_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PriceDropAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_price_drop_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_price_drop_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}

	product, err := c.ProductRepo.GetByID(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_price_drop_alert_fetch_product_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if product == nil {
		logger.Debugw("worker_price_drop_alert_skip_product_not_found", "product_id", payload.ProductID)
		return nil
	}

	oldPrice, err := models.NewMoneyFromString(payload.OldPrice)
	if err != nil {
		logger.Warnw("worker_price_drop_alert_skip_bad_old_price", "product_id", payload.ProductID, "old_price", payload.OldPrice)
		return nil
	}
	newPrice, err := models.NewMoneyFromString(payload.NewPrice)
	if err != nil {
		logger.Warnw("worker_price_drop_alert_skip_bad_new_price", "product_id", payload.ProductID, "new_price", payload.NewPrice)
		return nil
	}

	follows, err := c.UserProductRepo.ListEnabledByProduct(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_price_drop_alert_fetch_follows_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if len(follows) == 0 {
		logger.Debugw("worker_price_drop_alert_skip_no_followers", "product_id", payload.ProductID)
		return nil
	}

	notified := 0
	for _, follow := range follows {
		reason := EvaluateAlert(follow, oldPrice, newPrice)
		if reason == AlertReasonNone {
			continue
		}
		notified++
		logger.Infow("price_drop_alert_triggered",
			"user_id", follow.UserID,
			"product_id", product.ID,
			"product_name", product.Name,
			"old_price", oldPrice.StringFixed(2),
			"new_price", newPrice.StringFixed(2),
			"reason", string(reason),
		)
	}
	logger.Infow("price_drop_alert_processed",
		"product_id", product.ID,
		"followers", len(follows),
		"notified", notified,
	)
	return nil
}
