// Package yen provides a whole-yen money value over shopspring/decimal.
package yen

import (
	"math"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// TenThousand is the size of the "man-yen" large unit used by input forms
const TenThousand = 10000

var (
	monthsPerYear = decimal.NewFromInt(12)
	tenThousand   = decimal.NewFromInt(TenThousand)
)

// Money represents a yen amount. The internal value is kept unrounded.
type Money struct {
	decimal.Decimal
}

// FromFloat converts a boundary float to a decimal. NaN and ±Inf become zero.
func FromFloat(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// NonNegative is FromFloat with negative values clamped to zero
func NonNegative(v float64) decimal.Decimal {
	d := FromFloat(v)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// NewMoneyFromDecimal creates a Money from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromTenThousand converts a man-yen amount (10,000 yen units) to yen
func FromTenThousand(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return FromFloat(v).Mul(tenThousand).InexactFloat64()
}

// Whole rounds to whole yen (half away from zero)
func (m Money) Whole() Money {
	return Money{m.Decimal.Round(0)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(monthsPerYear)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the whole-yen amount without grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(0)
}

// Format renders the amount with the yen sign and thousands separators
func (m Money) Format() string {
	return gomoney.New(m.Decimal.Round(0).IntPart(), gomoney.JPY).Display()
}

// Format is a convenience for formatting a bare decimal as yen
func Format(d decimal.Decimal) string {
	return NewMoneyFromDecimal(d).Format()
}
