package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/obs"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/sales"
)

type repository interface {
	List(ctx context.Context, f Filter) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	Create(ctx context.Context, o Order) error
	ReplaceLines(ctx context.Context, o Order) error
	SetStatus(ctx context.Context, id, status string) error
}

type salesDirectory interface {
	ManagerByIdentity(ctx context.Context, uid, email string) (sales.SalesManager, error)
	SalesmenByManager(ctx context.Context, managerID string) ([]sales.Salesman, error)
}

// Notifier dispatches discount workflow notifications. Implementations
// must be safe for best-effort use: a failed notification never fails
// the order operation.
type Notifier interface {
	DiscountPending(ctx context.Context, v View) error
	DiscountDecided(ctx context.Context, v View, decision string) error
}

// Service implements order entry, listings and the discount approval
// workflow.
type Service struct {
	repo        repository
	sales       salesDirectory
	notifier    Notifier
	maxDiscount decimal.Decimal
	now         func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Repo        repository
	Sales       salesDirectory
	Notifier    Notifier
	MaxDiscount decimal.Decimal
	Now         func() time.Time
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	maxDiscount := cfg.MaxDiscount
	if maxDiscount.Sign() <= 0 {
		maxDiscount = decimal.NewFromInt(30)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:        cfg.Repo,
		sales:       cfg.Sales,
		notifier:    cfg.Notifier,
		maxDiscount: maxDiscount,
		now:         now,
	}
}

// Create validates and stores a new order. Totals are recomputed
// server-side; a non-zero discount puts the order into the pending
// approval queue.
func (s *Service) Create(ctx context.Context, in CreateInput) (View, error) {
	if err := common.ValidateStruct(in); err != nil {
		return View{}, err
	}
	discount := in.Discount.Decimal
	if discount.Sign() < 0 || discount.GreaterThan(s.maxDiscount) {
		return View{}, common.ErrValidation(
			"discount must be between 0 and "+s.maxDiscount.String(),
			map[string]any{"field": "discount"},
		)
	}

	now := s.now()
	o := Order{
		ID:             uuid.NewString(),
		State:          in.State,
		SalesmanID:     &in.SalesmanID,
		DealerID:       &in.DealerID,
		Discount:       discount,
		DiscountStatus: StatusApproved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	o.Lines = make([]Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		o.Lines = append(o.Lines, Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}

	b := reconcile(o)
	o.TotalPrice = b.TotalBase
	if discount.Sign() > 0 {
		after := b.TotalAfterDiscount
		o.DiscountedTotal = &after
		o.DiscountStatus = StatusPending
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return View{}, err
	}
	if obs.OrdersCreatedTotal != nil {
		obs.OrdersCreatedTotal.WithLabelValues(o.DiscountStatus).Inc()
	}

	view := BuildView(o, now)
	if o.DiscountStatus == StatusPending && s.notifier != nil {
		if err := s.notifier.DiscountPending(ctx, view); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("order_id", o.ID).Msg("discount notification enqueue failed")
		}
	}
	return view, nil
}

// List returns every order with display codes and breakdowns.
func (s *Service) List(ctx context.Context) ([]View, error) {
	orders, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	return BuildViews(orders, s.now()), nil
}

// ManagerOrders returns the orders booked by a manager's salesmen.
func (s *Service) ManagerOrders(ctx context.Context, uid, email string) ([]View, error) {
	manager, err := s.sales.ManagerByIdentity(ctx, uid, email)
	if err != nil {
		return nil, common.ErrForbidden("caller is not a sales manager")
	}
	team, err := s.sales.SalesmenByManager(ctx, manager.ID)
	if err != nil {
		return nil, err
	}
	if len(team) == 0 {
		return []View{}, nil
	}
	ids := make([]string, 0, len(team))
	for _, m := range team {
		ids = append(ids, m.ID)
	}
	orders, err := s.repo.List(ctx, Filter{SalesmanIDs: ids})
	if err != nil {
		return nil, err
	}
	return BuildViews(orders, s.now()), nil
}

// ManagerUpdate overwrites an order's lines and status from the manager
// edit form, recomputing totals through the shared reconciler.
func (s *Service) ManagerUpdate(ctx context.Context, orderID string, in UpdateInput) (View, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return View{}, err
	}
	if len(in.Lines) > 0 {
		lines := make([]Line, 0, len(in.Lines))
		for _, l := range in.Lines {
			lines = append(lines, Line{
				ProductID:       l.ProductID,
				ProductName:     l.ProductName,
				Quantity:        l.Quantity,
				Price:           l.Price,
				DiscountPct:     l.DiscountPct,
				DiscountedPrice: l.DiscountedPrice,
			})
		}
		o.Lines = lines
	}
	switch in.DiscountStatus {
	case StatusPending, StatusApproved, StatusRejected:
		o.DiscountStatus = in.DiscountStatus
	case "":
	default:
		return View{}, common.ErrValidation("unknown discount_status", map[string]any{"field": "discount_status"})
	}

	b := reconcile(o)
	o.TotalPrice = b.TotalBase
	if b.TotalDiscount.Sign() > 0 {
		after := b.TotalAfterDiscount
		o.DiscountedTotal = &after
	} else {
		o.DiscountedTotal = nil
	}
	o.UpdatedAt = s.now()

	if err := s.repo.ReplaceLines(ctx, o); err != nil {
		return View{}, err
	}
	return BuildView(o, s.now()), nil
}

// PendingApprovals lists orders awaiting a discount decision.
func (s *Service) PendingApprovals(ctx context.Context) ([]View, error) {
	orders, err := s.repo.List(ctx, Filter{Status: StatusPending})
	if err != nil {
		return nil, err
	}
	return BuildViews(orders, s.now()), nil
}

// Decide approves or rejects a pending discount.
func (s *Service) Decide(ctx context.Context, orderID, decision string) (View, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return View{}, common.ErrBadRequest("decision must be approved or rejected")
	}
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return View{}, err
	}
	if o.DiscountStatus != StatusPending {
		return View{}, common.ErrBadRequest("order has no pending discount")
	}
	if err := s.repo.SetStatus(ctx, orderID, decision); err != nil {
		return View{}, err
	}
	o.DiscountStatus = decision
	o.UpdatedAt = s.now()
	if obs.DiscountDecisionsTotal != nil {
		obs.DiscountDecisionsTotal.WithLabelValues(decision).Inc()
	}

	view := BuildView(o, s.now())
	if s.notifier != nil {
		if err := s.notifier.DiscountDecided(ctx, view, decision); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("order_id", orderID).Msg("decision notification enqueue failed")
		}
	}
	return view, nil
}
