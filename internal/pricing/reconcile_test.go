package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReconcileDerivesDiscountedFromPct(t *testing.T) {
	b := Reconcile([]Line{
		{Base: FromFloat(1000), DiscountPct: Ptr(FromFloat(10))},
	}, Aggregate{})

	require.True(t, b.Lines[0].Discounted.Equal(dec("900")))
	require.True(t, b.Lines[0].Pct.Equal(dec("10")))
	require.True(t, b.TotalDiscount.Equal(dec("100")))
	require.True(t, b.TotalAfterDiscount.Equal(dec("900")))
	require.False(t, b.FallbackApplied)
}

func TestReconcileDerivesPctFromDiscounted(t *testing.T) {
	b := Reconcile([]Line{
		{Base: FromFloat(800), DiscountedPrice: Ptr(FromFloat(720))},
	}, Aggregate{})

	require.True(t, b.Lines[0].Pct.Equal(dec("10")))
	// Round trip: recomputing discounted from the derived pct reproduces the input.
	roundTrip := b.Lines[0].Base.Sub(b.Lines[0].Base.Mul(b.Lines[0].Pct).Div(dec("100")))
	require.True(t, roundTrip.Equal(dec("720")))
}

func TestReconcileUndiscountedLine(t *testing.T) {
	b := Reconcile([]Line{{Base: FromFloat(500)}}, Aggregate{})
	require.True(t, b.Lines[0].Pct.IsZero())
	require.True(t, b.Lines[0].Discounted.Equal(dec("500")))
	require.True(t, b.TotalDiscount.IsZero())
	require.True(t, b.EffectivePct.IsZero())
}

func TestReconcileFallbackDiscountedTotal(t *testing.T) {
	// No line-level discounts; aggregate discounted total is 90% of the base.
	lines := []Line{
		{Base: FromFloat(600)},
		{Base: FromFloat(400)},
	}
	b := Reconcile(lines, Aggregate{DiscountedTotal: Ptr(FromFloat(900))})

	require.True(t, b.FallbackApplied)
	require.True(t, b.TotalDiscount.Equal(dec("100")))
	require.True(t, b.TotalAfterDiscount.Equal(dec("900")))
	// Proportional shares: 60/40 split of the 100 aggregate discount.
	require.True(t, b.Lines[0].DiscountAmount.Equal(dec("60")))
	require.True(t, b.Lines[1].DiscountAmount.Equal(dec("40")))
	require.True(t, b.Lines[0].Discounted.Equal(dec("540")))
	require.True(t, b.Lines[1].Discounted.Equal(dec("360")))
	require.True(t, b.Lines[0].Pct.Equal(dec("10")))
	require.True(t, b.EffectivePct.Equal(dec("10")))
}

func TestReconcileFallbackAggregatePct(t *testing.T) {
	lines := []Line{{Base: FromFloat(250)}, {Base: FromFloat(750)}}
	b := Reconcile(lines, Aggregate{DiscountPct: Ptr(FromFloat(20))})

	require.True(t, b.FallbackApplied)
	require.True(t, b.TotalDiscount.Equal(dec("200")))
	require.True(t, b.Lines[0].DiscountAmount.Equal(dec("50")))
	require.True(t, b.Lines[1].DiscountAmount.Equal(dec("150")))
}

func TestReconcileDiscountedTotalWinsOverPct(t *testing.T) {
	lines := []Line{{Base: FromFloat(1000)}}
	b := Reconcile(lines, Aggregate{
		DiscountedTotal: Ptr(FromFloat(950)),
		DiscountPct:     Ptr(FromFloat(20)),
	})
	require.True(t, b.TotalDiscount.Equal(dec("50")))
}

func TestReconcileFallbackIgnoredWhenLineDiscountPresent(t *testing.T) {
	lines := []Line{
		{Base: FromFloat(1000), DiscountPct: Ptr(FromFloat(5))},
		{Base: FromFloat(500)},
	}
	b := Reconcile(lines, Aggregate{DiscountPct: Ptr(FromFloat(20))})
	require.False(t, b.FallbackApplied)
	require.True(t, b.TotalDiscount.Equal(dec("50")))
}

func TestReconcileDiscountedTotalNotBelowBaseIsIgnored(t *testing.T) {
	lines := []Line{{Base: FromFloat(1000)}}
	b := Reconcile(lines, Aggregate{DiscountedTotal: Ptr(FromFloat(1000))})
	require.False(t, b.FallbackApplied)
	require.True(t, b.TotalDiscount.IsZero())
}

func TestReconcileZeroBaseLine(t *testing.T) {
	lines := []Line{
		{Base: FromFloat(0), DiscountedPrice: Ptr(FromFloat(0))},
		{Base: FromFloat(100)},
	}
	b := Reconcile(lines, Aggregate{DiscountPct: Ptr(FromFloat(10))})
	require.True(t, b.Lines[0].Pct.IsZero())
	require.True(t, b.Lines[0].DiscountAmount.IsZero())
	// The whole aggregate discount lands on the only line with a base.
	require.True(t, b.Lines[1].DiscountAmount.Equal(dec("10")))
}

func TestReconcileEmptyOrder(t *testing.T) {
	b := Reconcile(nil, Aggregate{DiscountPct: Ptr(FromFloat(10))})
	require.True(t, b.TotalBase.IsZero())
	require.True(t, b.TotalDiscount.IsZero())
	require.True(t, b.EffectivePct.IsZero())
	require.Empty(t, b.Lines)
}

func TestReconcileNegativeBasePassesThrough(t *testing.T) {
	// Legacy permissiveness: negative bases flow through arithmetically.
	b := Reconcile([]Line{{Base: FromFloat(-100)}}, Aggregate{})
	require.True(t, b.TotalBase.Equal(dec("-100")))
	require.True(t, b.Lines[0].Discounted.Equal(dec("-100")))
}

func TestReconcileIdempotent(t *testing.T) {
	lines := []Line{
		{Base: FromFloat(600), DiscountPct: Ptr(FromFloat(15))},
		{Base: FromFloat(400)},
	}
	agg := Aggregate{DiscountedTotal: Ptr(FromFloat(900))}
	first := Reconcile(lines, agg)
	second := Reconcile(lines, agg)
	require.Equal(t, len(first.Lines), len(second.Lines))
	for i := range first.Lines {
		require.True(t, first.Lines[i].Discounted.Equal(second.Lines[i].Discounted))
		require.True(t, first.Lines[i].Pct.Equal(second.Lines[i].Pct))
	}
	require.True(t, first.TotalDiscount.Equal(second.TotalDiscount))
}

func TestValueLenientUnmarshal(t *testing.T) {
	var payload struct {
		Price    Value  `json:"price"`
		Discount *Value `json:"discount"`
		Bad      Value  `json:"bad"`
	}
	raw := []byte(`{"price":"1250.50","discount":null,"bad":"not-a-number"}`)
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.True(t, payload.Price.Equal(dec("1250.5")))
	require.Nil(t, payload.Discount)
	require.True(t, payload.Bad.IsZero())
}
