// Package orderid derives human-readable order display codes of the form
// nxg-fy<YYYY>-<YY>-<statecode>-<NNNN>, partitioned by Indian fiscal year and
// state, and assigns per-group sequence numbers when a collection of orders is
// rendered together.
package orderid

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Meta is the order metadata the identifier derivation needs. A zero
// CreatedAt/UpdatedAt means the timestamp is unknown.
type Meta struct {
	ID        string
	State     string
	Seq       int
	HasSeq    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoerceDate resolves the order's creation instant: CreatedAt first, then
// UpdatedAt, then the timestamp encoded in a Mongo-style ObjectId prefix, and
// finally the supplied now. Historical orders imported from the legacy system
// often carry only the ObjectId; the chain must not change.
func CoerceDate(m Meta, now time.Time) time.Time {
	if !m.CreatedAt.IsZero() {
		return m.CreatedAt
	}
	if !m.UpdatedAt.IsZero() {
		return m.UpdatedAt
	}
	if ts, ok := ObjectIDTime(m.ID); ok {
		return ts
	}
	return now
}

// ObjectIDTime reads the first 8 hex characters of a Mongo-style identifier as
// big-endian Unix seconds. It reports false for anything shorter or non-hex.
func ObjectIDTime(id string) (time.Time, bool) {
	if len(id) < 8 {
		return time.Time{}, false
	}
	secs, err := strconv.ParseUint(id[:8], 16, 32)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(int64(secs), 0).UTC(), true
}

// FiscalYearCode encodes the Indian fiscal year (April–March) containing t as
// "fy<startYear>-<last two digits of startYear+1>".
func FiscalYearCode(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("fy%d-%02d", start, (start+1)%100)
}

// StateCode lowercases the state and strips everything outside a-z. Missing or
// fully non-alphabetic states collapse to "na".
func StateCode(state string) string {
	out := make([]byte, 0, len(state))
	for i := 0; i < len(state); i++ {
		c := state[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		}
	}
	if len(out) == 0 {
		return "na"
	}
	return string(out)
}

// DeriveSequence returns a sequence number for a single order rendered without
// a peer group: an explicit sequence mod 1000 when the document carries one,
// otherwise a 32-bit rolling hash of the order id mod 1000. The hash can
// collide across orders; it is a display approximation, not an ordering
// guarantee, and within a list SequenceMap takes precedence.
func DeriveSequence(m Meta) int {
	if m.HasSeq {
		seq := m.Seq % 1000
		if seq < 0 {
			seq = -seq
		}
		return seq
	}
	s := m.ID
	if s == "" {
		s = m.State + "|" + m.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	h := hash31(s)
	if h < 0 {
		h = -h
	}
	return int(h % 1000)
}

// DisplayID assembles the display code. A non-positive seq falls back to
// DeriveSequence; the final number is left-padded to four digits, minimum 1.
func DisplayID(m Meta, seq int, now time.Time) string {
	if seq <= 0 {
		seq = DeriveSequence(m)
	}
	if seq <= 0 {
		seq = 1
	}
	return fmt.Sprintf("nxg-%s-%s-%04d", FiscalYearCode(CoerceDate(m, now)), StateCode(m.State), seq)
}

// SequenceMap partitions orders into (fiscal year, state) groups, sorts each
// group oldest first and numbers it 1..N. The result is stable within one
// render but intentionally not globally stable: it must be computed from the
// full loaded collection, never from a pagination slice, or page changes
// renumber orders.
func SequenceMap(orders []Meta, now time.Time) map[string]int {
	type groupKey struct {
		fy    string
		state string
	}
	type member struct {
		id string
		at time.Time
	}
	groups := make(map[groupKey][]member)
	for _, m := range orders {
		at := CoerceDate(m, now)
		key := groupKey{fy: FiscalYearCode(at), state: StateCode(m.State)}
		groups[key] = append(groups[key], member{id: m.ID, at: at})
	}
	out := make(map[string]int, len(orders))
	for _, members := range groups {
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].at.Equal(members[j].at) {
				return members[i].id < members[j].id
			}
			return members[i].at.Before(members[j].at)
		})
		for i, m := range members {
			out[m.id] = i + 1
		}
	}
	return out
}

func hash31(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h*31 + int32(s[i])
	}
	return h
}
