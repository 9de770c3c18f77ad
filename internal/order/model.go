package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// Discount approval states.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Line is one product entry of a stored order. Numeric fields keep the
// lenient pricing.Value type: historical clients sent them as numbers,
// strings, or not at all.
type Line struct {
	ProductID       string         `json:"product_id"`
	ProductName     string         `json:"product_name,omitempty"`
	Quantity        pricing.Value  `json:"quantity"`
	Price           pricing.Value  `json:"price"`
	DiscountPct     *pricing.Value `json:"discount_pct,omitempty"`
	DiscountedPrice *pricing.Value `json:"discounted_price,omitempty"`

	// GSTPct is joined from the product master at read time, not stored.
	GSTPct decimal.Decimal `json:"-"`
}

// Order is a dealer order as stored.
type Order struct {
	ID              string           `json:"id"`
	State           string           `json:"state,omitempty"`
	SalesmanID      *string          `json:"salesman_id,omitempty"`
	DealerID        *string          `json:"dealer_id,omitempty"`
	Lines           []Line           `json:"products"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
	Discount        decimal.Decimal  `json:"discount"`
	DiscountedTotal *decimal.Decimal `json:"discounted_total,omitempty"`
	DiscountStatus  string           `json:"discount_status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// LineInput is one product entry of the make-order payload.
type LineInput struct {
	ProductID   string        `json:"product_id" validate:"required"`
	ProductName string        `json:"product_name"`
	Quantity    pricing.Value `json:"quantity"`
	Price       pricing.Value `json:"price"`
}

// CreateInput is the make-order payload. Client-computed totals are
// accepted but recomputed server-side before storing.
type CreateInput struct {
	State           string        `json:"state" validate:"required"`
	SalesmanID      string        `json:"salesman_id" validate:"required"`
	DealerID        string        `json:"dealer_id" validate:"required"`
	Lines           []LineInput   `json:"products" validate:"required,min=1"`
	TotalPrice      pricing.Value `json:"total_price"`
	Discount        pricing.Value `json:"discount"`
	DiscountedTotal pricing.Value `json:"discounted_total"`
	DiscountStatus  string        `json:"discount_status"`
}

// UpdateLineInput mirrors the manager edit form for one line.
type UpdateLineInput struct {
	ProductID       string         `json:"product_id"`
	ProductName     string         `json:"product_name"`
	Quantity        pricing.Value  `json:"quantity"`
	Price           pricing.Value  `json:"price"`
	DiscountPct     *pricing.Value `json:"discount_pct"`
	DiscountedPrice *pricing.Value `json:"discounted_price"`
}

// UpdateInput is the manager edit payload.
type UpdateInput struct {
	DiscountStatus string            `json:"discount_status"`
	Lines          []UpdateLineInput `json:"products"`
}

// LineView is the reconciled per-line breakdown served to clients.
type LineView struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Base           decimal.Decimal `json:"base"`
	DiscountPct    decimal.Decimal `json:"discount_pct"`
	Discounted     decimal.Decimal `json:"discounted"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	GSTPct         decimal.Decimal `json:"gst_pct"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
}

// BreakdownView carries order totals after reconciliation.
type BreakdownView struct {
	Lines              []LineView      `json:"lines"`
	TotalBase          decimal.Decimal `json:"total_base"`
	TotalDiscount      decimal.Decimal `json:"total_discount"`
	TotalAfterDiscount decimal.Decimal `json:"total_after_discount"`
	EffectivePct       decimal.Decimal `json:"effective_pct"`
	TotalGST           decimal.Decimal `json:"total_gst"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
	FallbackApplied    bool            `json:"fallback_applied,omitempty"`
}

// DisplayView carries preformatted Indian-grouped strings for the UI.
type DisplayView struct {
	TotalBase          string `json:"total_base"`
	TotalDiscount      string `json:"total_discount"`
	TotalAfterDiscount string `json:"total_after_discount"`
	EffectivePct       string `json:"effective_pct"`
	TotalGST           string `json:"total_gst"`
	GrandTotal         string `json:"grand_total"`
}

// View is an order enriched with its display code and reconciled
// breakdown. Every listing surface serves this same shape.
type View struct {
	Order
	DisplayID string        `json:"display_id"`
	Seq       int           `json:"seq"`
	Breakdown BreakdownView `json:"breakdown"`
	Display   DisplayView   `json:"display"`
}
