package pricing

import "github.com/shopspring/decimal"

// Line is one product entry of an order as stored. Discount data arrives in
// two historical shapes: an explicit per-line percentage, an explicit
// post-discount price, both, or neither (legacy orders carry only an
// order-level aggregate discount).
type Line struct {
	Base            Value
	DiscountPct     *Value
	DiscountedPrice *Value
	Quantity        Value
	GSTPct          Value
}

// Aggregate carries the order-level discount fields used only as a fallback
// when no line supplies its own discount.
type Aggregate struct {
	DiscountPct     *Value
	DiscountedTotal *Value
}

// ReconciledLine is the canonical per-line breakdown.
type ReconciledLine struct {
	Base           decimal.Decimal
	Pct            decimal.Decimal
	Discounted     decimal.Decimal
	DiscountAmount decimal.Decimal
}

// Breakdown aggregates the reconciled lines with order totals.
type Breakdown struct {
	Lines              []ReconciledLine
	TotalBase          decimal.Decimal
	TotalDiscount      decimal.Decimal
	TotalAfterDiscount decimal.Decimal
	EffectivePct       decimal.Decimal
	FallbackApplied    bool
}

// Reconcile resolves every line to a single consistent shape (base, discount
// percentage, discounted price) and computes order totals.
//
// When a line carries only a percentage the discounted price is derived, and
// vice versa (guarded against a zero base). If no line carries any discount at
// all, the order-level aggregate is recovered: a discounted total strictly
// below the pre-discount sum wins over a percentage, and the resulting amount
// is redistributed across lines proportionally to each line's share of the
// base total.
//
// Reconcile is pure, never mutates its input and never fails: malformed
// numeric input has already been coerced to zero by Value.
func Reconcile(lines []Line, agg Aggregate) Breakdown {
	out := Breakdown{Lines: make([]ReconciledLine, 0, len(lines))}
	totalBase := decimal.Zero
	totalDiscount := decimal.Zero
	hasExplicitLineDiscount := false

	for _, l := range lines {
		base := l.Base.Decimal
		var pct, discounted decimal.Decimal
		pctKnown := l.DiscountPct != nil
		discKnown := l.DiscountedPrice != nil
		if pctKnown {
			pct = l.DiscountPct.Decimal
		}
		if discKnown {
			discounted = l.DiscountedPrice.Decimal
		}
		if !pctKnown && discKnown && base.IsPositive() {
			pct = base.Sub(discounted).Div(base).Mul(hundred)
			pctKnown = true
		}
		if !discKnown && pctKnown {
			discounted = base.Sub(base.Mul(pct).Div(hundred))
			discKnown = true
		}
		if pctKnown && pct.IsPositive() {
			hasExplicitLineDiscount = true
		}
		if !pctKnown {
			pct = decimal.Zero
		}
		if !discKnown {
			discounted = base
		}
		amount := base.Sub(discounted)
		totalBase = totalBase.Add(base)
		totalDiscount = totalDiscount.Add(amount)
		out.Lines = append(out.Lines, ReconciledLine{
			Base:           base,
			Pct:            pct,
			Discounted:     discounted,
			DiscountAmount: amount,
		})
	}

	if !hasExplicitLineDiscount && totalBase.IsPositive() {
		aggAmount := decimal.Zero
		switch {
		case agg.DiscountedTotal != nil && agg.DiscountedTotal.Decimal.LessThan(totalBase):
			aggAmount = totalBase.Sub(agg.DiscountedTotal.Decimal)
		case agg.DiscountPct != nil && agg.DiscountPct.Decimal.IsPositive():
			aggAmount = totalBase.Mul(agg.DiscountPct.Decimal).Div(hundred)
		}
		if aggAmount.IsPositive() {
			out.FallbackApplied = true
			totalDiscount = aggAmount
			for i := range out.Lines {
				line := &out.Lines[i]
				lineAmount := aggAmount.Mul(line.Base).Div(totalBase)
				line.DiscountAmount = lineAmount
				line.Discounted = line.Base.Sub(lineAmount)
				if line.Base.IsPositive() {
					line.Pct = lineAmount.Div(line.Base).Mul(hundred)
				} else {
					line.Pct = decimal.Zero
				}
			}
		}
	}

	out.TotalBase = totalBase
	out.TotalDiscount = totalDiscount
	out.TotalAfterDiscount = totalBase.Sub(totalDiscount)
	if totalBase.IsPositive() {
		out.EffectivePct = totalDiscount.Div(totalBase).Mul(hundred)
	} else {
		out.EffectivePct = decimal.Zero
	}
	return out
}
