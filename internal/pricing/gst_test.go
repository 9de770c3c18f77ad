package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGST(t *testing.T) {
	got := GST(decimal.NewFromInt(1000), decimal.NewFromInt(18))
	if !got.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("GST(1000, 18) = %s, want 180", got)
	}
}

func TestGSTZeroAndNegativeRate(t *testing.T) {
	for _, pct := range []int64{0, -5} {
		got := GST(decimal.NewFromInt(2500), decimal.NewFromInt(pct))
		if !got.IsZero() {
			t.Fatalf("GST(2500, %d) = %s, want 0", pct, got)
		}
	}
}

func TestTotalWithGST(t *testing.T) {
	got := TotalWithGST(decimal.NewFromInt(1000), decimal.NewFromInt(18))
	if !got.Equal(decimal.NewFromInt(1180)) {
		t.Fatalf("TotalWithGST(1000, 18) = %s, want 1180", got)
	}
}

func TestGSTFullPrecision(t *testing.T) {
	got := GST(decimal.NewFromFloat(99.99), decimal.NewFromInt(12))
	want, _ := decimal.NewFromString("11.9988")
	if !got.Equal(want) {
		t.Fatalf("GST(99.99, 12) = %s, want %s", got, want)
	}
}
