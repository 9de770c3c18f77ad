package pricing

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Value is a currency or percentage figure that tolerates the loose numeric
// shapes found in legacy order documents: numbers, numeric strings, null and
// empty strings. Anything that cannot be read as a number coerces to zero
// instead of failing. A malformed figure is therefore indistinguishable from a
// legitimate zero; that trade-off is deliberate for a display-layer core.
type Value struct {
	decimal.Decimal
}

// From wraps a decimal in a Value.
func From(d decimal.Decimal) Value {
	return Value{Decimal: d}
}

// FromFloat builds a Value from a float64.
func FromFloat(f float64) Value {
	return Value{Decimal: decimal.NewFromFloat(f)}
}

// Ptr returns a pointer to a Value, for optional fields.
func Ptr(v Value) *Value {
	return &v
}

// UnmarshalJSON never reports an error: unreadable input becomes zero.
func (v *Value) UnmarshalJSON(data []byte) error {
	d, _ := Coerce(string(data))
	v.Decimal = d
	return nil
}

// MarshalJSON renders the value as a JSON number.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.Decimal.MarshalJSON()
}

// Coerce converts an arbitrary runtime value into a decimal, reporting whether
// the input was a readable number. nil, empty strings, JSON null and garbage
// all coerce to (0, false).
func Coerce(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case Value:
		return v.Decimal, true
	case *Value:
		if v == nil {
			return decimal.Zero, false
		}
		return v.Decimal, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		return parseNumeric(string(v))
	case string:
		return parseNumeric(v)
	default:
		return decimal.Zero, false
	}
}

func parseNumeric(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
