// Package core holds the expense domain: sanitization, validation,
// filtering and aggregation over owner-scoped expense collections.
//
// Amounts are held as integer cents so that totals are exact; decimal
// arithmetic is confined to the parsing and formatting edges.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmountCents is the upper bound on a single expense amount
// (10,000,000.00 in the configured currency).
const MaxAmountCents int64 = 10_000_000_00

// Money is a monetary amount in cents.
type Money struct {
	Cents int64
}

var (
	centsFactor = decimal.NewFromInt(100)
	maxAmount   = decimal.NewFromInt(MaxAmountCents)
)

// ParseAmount converts a decimal string from form input to cents.
//
// The value must be a finite positive number with at most two decimal
// places, no larger than MaxAmountCents. Both dot and comma decimal
// separators are accepted.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Mul(centsFactor)
	if !cents.Equal(cents.Floor()) {
		return Money{}, ErrInvalidAmount
	}
	if cents.LessThanOrEqual(decimal.Zero) {
		return Money{}, ErrInvalidAmount
	}
	if cents.GreaterThan(maxAmount) {
		return Money{}, ErrAmountTooLarge
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Decimal returns the amount as a decimal value in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(centsFactor)
}

// String renders the amount with two decimal places and no symbol.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Formatter renders amounts in a single fixed currency.
type Formatter struct {
	Symbol string
}

// Format renders an amount with the currency symbol and thousands
// separators, e.g. "₦1,234.56".
func (f Formatter) Format(m Money) string {
	s := m.Decimal().StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(f.Symbol)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
