package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/orderid"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// BuildViews assembles display codes and reconciled breakdowns for a
// full result set. Sequence numbers are computed over the whole set, not
// a page, so a given order keeps its code across listings.
func BuildViews(orders []Order, now time.Time) []View {
	metas := make([]orderid.Meta, len(orders))
	for i, o := range orders {
		metas[i] = meta(o)
	}
	seqs := orderid.SequenceMap(metas, now)

	views := make([]View, len(orders))
	for i, o := range orders {
		views[i] = buildView(o, seqs[o.ID], now)
	}
	return views
}

// BuildView assembles a single order view. The sequence falls back to
// the deterministic hash when the order is rendered outside a listing.
func BuildView(o Order, now time.Time) View {
	return buildView(o, 0, now)
}

func meta(o Order) orderid.Meta {
	return orderid.Meta{
		ID:        o.ID,
		State:     o.State,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func buildView(o Order, seq int, now time.Time) View {
	b := reconcile(o)

	lineViews := make([]LineView, len(b.Lines))
	totalGST := decimal.Zero
	for i, rl := range b.Lines {
		src := o.Lines[i]
		gst := pricing.GST(rl.Discounted, src.GSTPct)
		totalGST = totalGST.Add(gst)
		lineViews[i] = LineView{
			ProductID:      src.ProductID,
			ProductName:    src.ProductName,
			Quantity:       src.Quantity.Decimal,
			Base:           rl.Base,
			DiscountPct:    rl.Pct,
			Discounted:     rl.Discounted,
			DiscountAmount: rl.DiscountAmount,
			GSTPct:         src.GSTPct,
			GSTAmount:      gst,
		}
	}
	grand := b.TotalAfterDiscount.Add(totalGST)

	m := meta(o)
	if seq <= 0 {
		seq = orderid.DeriveSequence(m)
	}
	return View{
		Order:     o,
		DisplayID: orderid.DisplayID(m, seq, now),
		Seq:       seq,
		Breakdown: BreakdownView{
			Lines:              lineViews,
			TotalBase:          b.TotalBase,
			TotalDiscount:      b.TotalDiscount,
			TotalAfterDiscount: b.TotalAfterDiscount,
			EffectivePct:       b.EffectivePct,
			TotalGST:           totalGST,
			GrandTotal:         grand,
			FallbackApplied:    b.FallbackApplied,
		},
		Display: DisplayView{
			TotalBase:          pricing.INR(b.TotalBase),
			TotalDiscount:      pricing.INR(b.TotalDiscount),
			TotalAfterDiscount: pricing.INR(b.TotalAfterDiscount),
			EffectivePct:       pricing.Percent(b.EffectivePct),
			TotalGST:           pricing.INR(totalGST),
			GrandTotal:         pricing.INR(grand),
		},
	}
}

func reconcile(o Order) pricing.Breakdown {
	lines := make([]pricing.Line, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = pricing.Line{
			Base:            l.Price,
			DiscountPct:     l.DiscountPct,
			DiscountedPrice: l.DiscountedPrice,
			Quantity:        l.Quantity,
			GSTPct:          pricing.From(l.GSTPct),
		}
	}
	agg := pricing.Aggregate{}
	if o.Discount.Sign() > 0 {
		agg.DiscountPct = pricing.Ptr(pricing.From(o.Discount))
	}
	if o.DiscountedTotal != nil {
		agg.DiscountedTotal = pricing.Ptr(pricing.From(*o.DiscountedTotal))
	}
	return pricing.Reconcile(lines, agg)
}
