package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/provider"
	"github.com/tienda-next/internal/queue"
	"github.com/tienda-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the async tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires the handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutFinalize, c.handleCheckoutFinalize)
}

// handleCheckoutFinalize runs the post-checkout stock adjustment. The
// step is idempotent, so asynq retries after partial failures are safe.
func (c *Consumer) handleCheckoutFinalize(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_checkout_finalize_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CheckoutFinalizePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_checkout_finalize_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_checkout_finalize_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	err := c.InventoryService.FinalizeCheckout(payload.OrderID)
	if errors.Is(err, service.ErrOrderNotFound) {
		// the order was hard deleted; nothing left to adjust
		logger.Debugw("worker_checkout_finalize_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if err != nil {
		logger.Warnw("worker_checkout_finalize_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	logger.Infow("worker_checkout_finalize_done", "order_id", payload.OrderID)
	return nil
}
