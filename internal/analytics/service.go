package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// StateSlice is one state's share of the order book.
type StateSlice struct {
	State      string          `json:"state"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopProduct is one entry of the best-sellers list.
type TopProduct struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Overview aggregates the dashboard numbers.
type Overview struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	ApprovedOrders  int64           `json:"approved_orders"`
	RejectedOrders  int64           `json:"rejected_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	SalesmenCount   int64           `json:"salesmen_count"`
	DealersCount    int64           `json:"dealers_count"`
	OrdersByState   []StateSlice    `json:"orders_by_state"`
	TopProducts     []TopProduct    `json:"top_products"`
	RevenueDisplay  string          `json:"revenue_display"`
	DiscountDisplay string          `json:"discount_display"`
}

// Querier defines the database access required for the overview.
type Querier interface {
	OrderCounts(ctx context.Context) (total, pending, approved, rejected int64, err error)
	RevenueTotals(ctx context.Context) (revenue, discount decimal.Decimal, err error)
	HeadCounts(ctx context.Context) (salesmen, dealers int64, err error)
	OrdersByState(ctx context.Context) ([]StateSlice, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

// Service provides the cached dashboard overview.
type Service struct {
	Q   Querier
	R   *redis.Client
	TTL time.Duration
}

const overviewKey = "analytics:overview"

// Overview assembles the dashboard aggregates, served from Redis while
// the TTL holds.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if s == nil || s.Q == nil {
		return Overview{}, fmt.Errorf("analytics service not configured")
	}
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	var o Overview
	var err error
	o.TotalOrders, o.PendingOrders, o.ApprovedOrders, o.RejectedOrders, err = s.Q.OrderCounts(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("order counts: %w", err)
	}
	o.TotalRevenue, o.TotalDiscount, err = s.Q.RevenueTotals(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("revenue totals: %w", err)
	}
	o.SalesmenCount, o.DealersCount, err = s.Q.HeadCounts(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("head counts: %w", err)
	}
	o.OrdersByState, err = s.Q.OrdersByState(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("orders by state: %w", err)
	}
	o.TopProducts, err = s.Q.TopProducts(ctx, 10)
	if err != nil {
		return Overview{}, fmt.Errorf("top products: %w", err)
	}
	o.RevenueDisplay = pricing.INR(o.TotalRevenue)
	o.DiscountDisplay = pricing.INR(o.TotalDiscount)

	s.store(ctx, o)
	return o, nil
}

func (s *Service) fromCache(ctx context.Context) (Overview, bool) {
	if s.R == nil || s.TTL <= 0 {
		return Overview{}, false
	}
	data, err := s.R.Get(ctx, overviewKey).Bytes()
	if err != nil {
		return Overview{}, false
	}
	var o Overview
	if err := json.Unmarshal(data, &o); err != nil {
		return Overview{}, false
	}
	return o, true
}

func (s *Service) store(ctx context.Context, o Overview) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(o)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, overviewKey, data, s.TTL).Err()
}
