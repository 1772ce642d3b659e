package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateParser converts a raw date cell into a time.
type DateParser func(string) (time.Time, error)

// AmountParser converts a raw amount cell into a signed amount.
type AmountParser func(string) (decimal.Decimal, error)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"1/2/2006",
	"01/02/06",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDate parses a date in any of the common export layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseAmount parses a decimal amount, tolerating a currency symbol,
// thousands separators and accounting-style parentheses for negatives.
func ParseAmount(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		neg = true
		v = v[1 : len(v)-1]
	}
	v = strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
	if v == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// LayoutDate returns a DateParser for a single time layout.
func LayoutDate(layout string) DateParser {
	return func(s string) (time.Time, error) {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		return t, nil
	}
}

// PlainAmount uses the exported sign as-is.
func PlainAmount(s string) (decimal.Decimal, error) {
	return ParseAmount(s)
}

// NegateAmount inverts the exported sign.
func NegateAmount(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Neg(), nil
}

// WithdrawalAmount reads a withdrawal column: positive values become
// negative, and blank, zero or negative cells yield zero.
func WithdrawalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsPositive() {
		return d.Neg(), nil
	}
	return decimal.Zero, nil
}

// AmountParserByName returns the named amount transform: plain, negate or
// withdrawal. An empty name means plain.
func AmountParserByName(name string) (AmountParser, error) {
	switch strings.ToLower(name) {
	case "", "plain":
		return PlainAmount, nil
	case "negate":
		return NegateAmount, nil
	case "withdrawal":
		return WithdrawalAmount, nil
	default:
		return nil, fmt.Errorf("unknown amount transform %q", name)
	}
}
