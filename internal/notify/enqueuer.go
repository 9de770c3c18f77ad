package notify

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/order"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// Enqueuer publishes discount workflow tasks. It implements
// order.Notifier.
type Enqueuer struct {
	Client *asynq.Client
}

// DiscountPending enqueues an admin notification for a new pending
// discount.
func (e *Enqueuer) DiscountPending(ctx context.Context, v order.View) error {
	if e == nil || e.Client == nil {
		return nil
	}
	task, err := NewDiscountPendingTask(payloadFrom(v, ""))
	if err != nil {
		return err
	}
	_, err = e.Client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	return err
}

// DiscountDecided enqueues a salesman notification after a decision.
func (e *Enqueuer) DiscountDecided(ctx context.Context, v order.View, decision string) error {
	if e == nil || e.Client == nil {
		return nil
	}
	task, err := NewDiscountDecidedTask(payloadFrom(v, decision))
	if err != nil {
		return err
	}
	_, err = e.Client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	return err
}

func payloadFrom(v order.View, decision string) DiscountPayload {
	p := DiscountPayload{
		OrderID:     v.ID,
		DisplayID:   v.DisplayID,
		State:       v.State,
		DiscountPct: pricing.Percent(v.Discount),
		TotalPrice:  pricing.INR(v.TotalPrice),
		Decision:    decision,
	}
	if v.SalesmanID != nil {
		p.SalesmanID = *v.SalesmanID
	}
	if v.DiscountedTotal != nil {
		p.DiscountedTotal = pricing.INR(*v.DiscountedTotal)
	}
	return p
}
