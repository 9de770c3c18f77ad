package forecast

import (
	"time"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// Item is one product line of a monthly forecast.
type Item struct {
	ProductID string        `json:"product_id"`
	DealerID  *string       `json:"dealer_id,omitempty"`
	Quantity  pricing.Value `json:"quantity"`
}

// Forecast is a salesman's plan for one month.
type Forecast struct {
	ID         string    `json:"id"`
	SalesmanID string    `json:"salesman_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Items      []Item    `json:"products"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SaveInput is the POST /forecasts payload. Submitting again for the
// same month replaces the earlier plan.
type SaveInput struct {
	Month int    `json:"month" validate:"required,min=1,max=12"`
	Year  int    `json:"year" validate:"required,min=2000,max=2100"`
	Items []Item `json:"products" validate:"required,min=1"`
}
