package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/obs"
)

// EmailSender delivers a rendered notification. The default
// implementation logs the message; a real SMTP gateway plugs in behind
// the same interface.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes notifications to the structured log instead of an
// SMTP gateway. Deliveries stay observable without mail infrastructure.
type LogSender struct {
	Logger zerolog.Logger
}

// Send implements EmailSender.
func (s LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.Logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("notification delivered")
	return nil
}

// Worker consumes discount workflow tasks.
type Worker struct {
	Sender     EmailSender
	AdminEmail string
}

// Register attaches the worker's handlers to an asynq mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskDiscountPending, w.HandleDiscountPending)
	mux.HandleFunc(TaskDiscountDecided, w.HandleDiscountDecided)
}

// HandleDiscountPending notifies the admin inbox about a discount
// waiting for approval.
func (w *Worker) HandleDiscountPending(ctx context.Context, t *asynq.Task) error {
	var p DiscountPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.count(TaskDiscountPending, "malformed")
		return fmt.Errorf("decode payload: %w", err)
	}
	subject := fmt.Sprintf("Discount approval needed: %s", p.DisplayID)
	body := fmt.Sprintf("Order %s (%s) requests a %s%% discount on ₹%s.",
		p.DisplayID, p.State, p.DiscountPct, p.TotalPrice)
	if err := w.Sender.Send(ctx, w.AdminEmail, subject, body); err != nil {
		w.count(TaskDiscountPending, "error")
		return err
	}
	w.count(TaskDiscountPending, "ok")
	return nil
}

// HandleDiscountDecided notifies about an approve/reject decision.
func (w *Worker) HandleDiscountDecided(ctx context.Context, t *asynq.Task) error {
	var p DiscountPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.count(TaskDiscountDecided, "malformed")
		return fmt.Errorf("decode payload: %w", err)
	}
	subject := fmt.Sprintf("Discount %s: %s", p.Decision, p.DisplayID)
	body := fmt.Sprintf("The %s%% discount on order %s was %s.",
		p.DiscountPct, p.DisplayID, p.Decision)
	if err := w.Sender.Send(ctx, w.AdminEmail, subject, body); err != nil {
		w.count(TaskDiscountDecided, "error")
		return err
	}
	w.count(TaskDiscountDecided, "ok")
	return nil
}

func (w *Worker) count(kind, result string) {
	if obs.NotifyTasksTotal != nil {
		obs.NotifyTasksTotal.WithLabelValues(kind, result).Inc()
	}
}
