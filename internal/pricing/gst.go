package pricing

import "github.com/shopspring/decimal"

// GST returns the Goods and Services Tax on a post-discount amount. The tax is
// always computed on the discounted figure, never on the pre-discount base —
// that invariant holds at every call site (order submission, listing and
// approval views). Rounding is left to the formatting layer.
func GST(discounted, pct decimal.Decimal) decimal.Decimal {
	if pct.Sign() <= 0 {
		return decimal.Zero
	}
	return discounted.Mul(pct).Div(hundred)
}

// TotalWithGST returns the discounted amount plus its GST.
func TotalWithGST(discounted, pct decimal.Decimal) decimal.Decimal {
	return discounted.Add(GST(discounted, pct))
}
