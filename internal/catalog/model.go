package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// Product is a sellable SKU. The same commercial name can appear in
// several packing sizes, each stored as its own row.
type Product struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Category              string          `json:"category,omitempty"`
	PackingSize           string          `json:"packing_size,omitempty"`
	BottlesPerCase        int             `json:"bottles_per_case"`
	BottleVolume          string          `json:"bottle_volume,omitempty"`
	MOQ                   int             `json:"moq"`
	DealerPricePerBottle  decimal.Decimal `json:"dealer_price_per_bottle"`
	GSTPercentage         decimal.Decimal `json:"gst_percentage"`
	BillingPricePerBottle decimal.Decimal `json:"billing_price_per_bottle"`
	MRPPerBottle          decimal.Decimal `json:"mrp_per_bottle"`
	ProductDetails        string          `json:"product_details,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// PackingOption is the reduced shape used by the order form when a
// salesman picks a size for an already chosen product name.
type PackingOption struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PackingSize    string `json:"packing_size"`
	BottlesPerCase int    `json:"bottles_per_case"`
	BottleVolume   string `json:"bottle_volume,omitempty"`
	MOQ            int    `json:"moq"`
}

// ProductInput carries create/update payloads. Price fields accept any
// numeric JSON shape and coerce garbage to zero.
type ProductInput struct {
	Name                  string        `json:"name" validate:"required"`
	Category              string        `json:"category"`
	PackingSize           string        `json:"packing_size"`
	BottlesPerCase        int           `json:"bottles_per_case" validate:"gte=0"`
	BottleVolume          string        `json:"bottle_volume"`
	MOQ                   int           `json:"moq" validate:"gte=0"`
	DealerPricePerBottle  pricing.Value `json:"dealer_price_per_bottle"`
	GSTPercentage         pricing.Value `json:"gst_percentage"`
	BillingPricePerBottle pricing.Value `json:"billing_price_per_bottle"`
	MRPPerBottle          pricing.Value `json:"mrp_per_bottle"`
	ProductDetails        string        `json:"product_details"`
}

// PriceQuote is the response for the order-form price lookup. Quantity
// counts cases; the unit price is the dealer price of one case.
type PriceQuote struct {
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	TotalWithGST  decimal.Decimal `json:"total_with_gst"`
	Display       QuoteDisplay    `json:"display"`
}

// QuoteDisplay carries Indian-grouped strings ready for the UI.
type QuoteDisplay struct {
	UnitPrice    string `json:"unit_price"`
	TotalPrice   string `json:"total_price"`
	GSTAmount    string `json:"gst_amount"`
	TotalWithGST string `json:"total_with_gst"`
}
