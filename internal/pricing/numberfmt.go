package pricing

import "strings"

type format struct {
	decimals int
	force    bool
}

// Option configures a formatting call.
type Option func(*format)

// Decimals caps the maximum number of fraction digits.
func Decimals(n int) Option {
	return func(f *format) {
		if n >= 0 {
			f.decimals = n
		}
	}
}

// ForceDecimals pins the minimum fraction digits to the configured maximum, so
// 12.5 renders as "12.50" with the default two decimals.
func ForceDecimals() Option {
	return func(f *format) { f.force = true }
}

// INR renders a currency figure with Indian digit grouping (lakh/crore: a
// group of three, then groups of two). Unreadable input renders as "0". The
// rupee symbol is left to the caller.
func INR(value any, opts ...Option) string {
	return formatIndian(value, opts)
}

// Percent renders a percentage figure with the same coercion rules as INR.
// No "%" suffix is appended; callers place the symbol.
func Percent(value any, opts ...Option) string {
	return formatIndian(value, opts)
}

func formatIndian(value any, opts []Option) string {
	f := format{decimals: 2}
	for _, opt := range opts {
		opt(&f)
	}
	d, ok := Coerce(value)
	if !ok {
		return "0"
	}
	d = d.Round(int32(f.decimals))

	neg := d.IsNegative()
	s := d.Abs().StringFixed(int32(f.decimals))

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if !f.force {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	var b strings.Builder
	if neg && (intPart != "0" || fracPart != "") {
		b.WriteByte('-')
	}
	b.WriteString(groupIndian(intPart))
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// groupIndian inserts commas after the last three digits and then every two.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head := digits[:n-3]
	tail := digits[n-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
