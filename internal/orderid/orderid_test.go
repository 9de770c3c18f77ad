package orderid

import (
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

func TestFiscalYearBoundary(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC), "fy2023-24"},
		{time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "fy2024-25"},
		{time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC), "fy2024-25"},
		{time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), "fy2024-25"},
	}
	for _, tc := range cases {
		if got := FiscalYearCode(tc.date); got != tc.want {
			t.Fatalf("FiscalYearCode(%s) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestFiscalYearCenturyRollover(t *testing.T) {
	if got := FiscalYearCode(time.Date(2099, time.June, 1, 0, 0, 0, 0, time.UTC)); got != "fy2099-00" {
		t.Fatalf("FiscalYearCode = %q, want fy2099-00", got)
	}
}

func TestStateCode(t *testing.T) {
	cases := map[string]string{
		"AP":          "ap",
		"Tamil Nadu":  "tamilnadu",
		"U.P.":        "up",
		"":            "na",
		"1234":        "na",
		"West-Bengal": "westbengal",
	}
	for in, want := range cases {
		if got := StateCode(in); got != want {
			t.Fatalf("StateCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCoerceDatePriority(t *testing.T) {
	created := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)

	got := CoerceDate(Meta{CreatedAt: created, UpdatedAt: updated}, fixedNow)
	if !got.Equal(created) {
		t.Fatalf("created_at should win, got %s", got)
	}
	got = CoerceDate(Meta{UpdatedAt: updated}, fixedNow)
	if !got.Equal(updated) {
		t.Fatalf("updated_at fallback, got %s", got)
	}
}

func TestCoerceDateObjectIDFallback(t *testing.T) {
	// 0x66a00000 = 1721761792 seconds.
	m := Meta{ID: "66a00000abcdef1234567890"}
	got := CoerceDate(m, fixedNow)
	want := time.Unix(0x66a00000, 0).UTC()
	if !got.Equal(want) {
		t.Fatalf("ObjectId timestamp, got %s want %s", got, want)
	}
}

func TestCoerceDateDefaultsToNow(t *testing.T) {
	if got := CoerceDate(Meta{ID: "not-hex!"}, fixedNow); !got.Equal(fixedNow) {
		t.Fatalf("malformed id should fall back to now, got %s", got)
	}
	if got := CoerceDate(Meta{}, fixedNow); !got.Equal(fixedNow) {
		t.Fatalf("empty meta should fall back to now, got %s", got)
	}
}

func TestDeriveSequenceExplicit(t *testing.T) {
	if got := DeriveSequence(Meta{Seq: 12345, HasSeq: true}); got != 345 {
		t.Fatalf("explicit seq mod 1000, got %d", got)
	}
}

func TestDeriveSequenceDeterministic(t *testing.T) {
	m := Meta{ID: "66a00000abcdef1234567890"}
	first := DeriveSequence(m)
	second := DeriveSequence(m)
	if first != second {
		t.Fatalf("sequence not deterministic: %d vs %d", first, second)
	}
	if first < 0 || first > 999 {
		t.Fatalf("sequence out of range: %d", first)
	}
}

func TestDisplayIDShape(t *testing.T) {
	m := Meta{
		ID:        "abc123",
		State:     "AP",
		CreatedAt: time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
	}
	got := DisplayID(m, 7, fixedNow)
	if got != "nxg-fy2024-25-ap-0007" {
		t.Fatalf("DisplayID = %q", got)
	}
	if !strings.HasPrefix(DisplayID(m, 0, fixedNow), "nxg-fy2024-25-ap-") {
		t.Fatalf("zero seq should still produce a padded code")
	}
}

func TestSequenceMapOrdersWithinGroup(t *testing.T) {
	t1 := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	// Deliberately shuffled input order.
	orders := []Meta{
		{ID: "b", State: "AP", CreatedAt: t2},
		{ID: "c", State: "AP", CreatedAt: t3},
		{ID: "a", State: "AP", CreatedAt: t1},
	}
	seq := SequenceMap(orders, fixedNow)
	if seq["a"] != 1 || seq["b"] != 2 || seq["c"] != 3 {
		t.Fatalf("unexpected sequence assignment: %v", seq)
	}
}

func TestSequenceMapPartitionsByStateAndFiscalYear(t *testing.T) {
	inFY24 := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	inFY23 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	orders := []Meta{
		{ID: "ap1", State: "AP", CreatedAt: inFY24},
		{ID: "tg1", State: "TG", CreatedAt: inFY24},
		{ID: "ap0", State: "AP", CreatedAt: inFY23},
	}
	seq := SequenceMap(orders, fixedNow)
	if seq["ap1"] != 1 || seq["tg1"] != 1 || seq["ap0"] != 1 {
		t.Fatalf("each (fy, state) group should restart at 1: %v", seq)
	}
}
