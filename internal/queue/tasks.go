package queue

import (
	"encoding/json"

	"github.com/tienda-next/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskCheckoutFinalize adjusts stock and closes the cart after checkout.
const TaskCheckoutFinalize = constants.TaskCheckoutFinalize

// CheckoutFinalizePayload names the order whose stock adjustment is due.
type CheckoutFinalizePayload struct {
	OrderID uint `json:"order_id"`
}

// NewCheckoutFinalizeTask builds the finalize task.
func NewCheckoutFinalizeTask(payload CheckoutFinalizePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutFinalize, body), nil
}
