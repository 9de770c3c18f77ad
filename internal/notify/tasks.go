package notify

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names routed through asynq.
const (
	TaskDiscountPending = "notify:discount_pending"
	TaskDiscountDecided = "notify:discount_decided"
)

// DiscountPayload is the JSON body of both discount task types.
type DiscountPayload struct {
	OrderID         string `json:"order_id"`
	DisplayID       string `json:"display_id"`
	State           string `json:"state"`
	SalesmanID      string `json:"salesman_id,omitempty"`
	DiscountPct     string `json:"discount_pct"`
	TotalPrice      string `json:"total_price"`
	DiscountedTotal string `json:"discounted_total,omitempty"`
	Decision        string `json:"decision,omitempty"`
}

// NewDiscountPendingTask builds the task enqueued when an order lands in
// the approval queue.
func NewDiscountPendingTask(p DiscountPayload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDiscountPending, body), nil
}

// NewDiscountDecidedTask builds the task enqueued after an admin
// decision.
func NewDiscountDecidedTask(p DiscountPayload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDiscountDecided, body), nil
}
