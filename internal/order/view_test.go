package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

func dayOrder(id, state string, day int) Order {
	return Order{
		ID:        id,
		State:     state,
		CreatedAt: time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
		Lines: []Line{
			{ProductID: "p1", Quantity: pricing.FromFloat(1), Price: pricing.FromFloat(100), GSTPct: decimal.NewFromInt(18)},
		},
	}
}

func TestBuildViewsNumbersOldestFirstPerStateAndYear(t *testing.T) {
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	orders := []Order{
		dayOrder("c", "Telangana", 20),
		dayOrder("a", "Telangana", 5),
		dayOrder("b", "Telangana", 10),
		dayOrder("x", "Andhra Pradesh", 7),
	}

	views := BuildViews(orders, now)
	byID := map[string]View{}
	for _, v := range views {
		byID[v.ID] = v
	}

	require.Equal(t, "nxg-fy2024-25-telangana-0001", byID["a"].DisplayID)
	require.Equal(t, "nxg-fy2024-25-telangana-0002", byID["b"].DisplayID)
	require.Equal(t, "nxg-fy2024-25-telangana-0003", byID["c"].DisplayID)
	require.Equal(t, "nxg-fy2024-25-andhrapradesh-0001", byID["x"].DisplayID)
}

func TestBuildViewAddsGSTOnDiscountedAmount(t *testing.T) {
	o := dayOrder("g1", "Telangana", 5)
	discount := decimal.NewFromInt(10)
	o.Discount = discount

	view := BuildView(o, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))

	// 100 base, 10% off = 90, GST 18% of 90 = 16.2.
	require.True(t, view.Breakdown.TotalAfterDiscount.Equal(decimal.NewFromInt(90)))
	require.True(t, view.Breakdown.TotalGST.Equal(decimal.NewFromFloat(16.2)))
	require.True(t, view.Breakdown.GrandTotal.Equal(decimal.NewFromFloat(106.2)))
	require.Equal(t, "106.2", view.Display.GrandTotal)
}

func TestBuildViewLegacyObjectIDDate(t *testing.T) {
	// The hex id prefix 0x65000000 decodes to a September 2023 timestamp,
	// which lands in fiscal year 2023-24.
	o := Order{
		ID:    "650000000000000000000000",
		State: "Telangana",
		Lines: []Line{{Quantity: pricing.FromFloat(1), Price: pricing.FromFloat(50)}},
	}

	view := BuildView(o, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	require.Contains(t, view.DisplayID, "nxg-fy2023-24-telangana-")
}
