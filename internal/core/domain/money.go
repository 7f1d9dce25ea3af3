package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount of Nigerian Naira expressed as an integer count of kobo
// (1 naira = 100 kobo). All internal arithmetic stays on the integer
// representation so repeated aggregation never accumulates float drift.
type Money int64

// CurrencyNGN is the only currency the engine handles.
const CurrencyNGN = "NGN"

var oneHundred = decimal.NewFromInt(100)

// MoneyFromDecimal converts a major-unit (naira) decimal amount into kobo,
// rounding half-up to the nearest kobo.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(oneHundred).Round(0).IntPart())
}

// ParseMoney parses a major-unit decimal string (e.g. "1250.50") into Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d), nil
}

// Decimal returns the amount in naira as an exact two-place decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders the amount in naira with exactly two fractional digits.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// IsNegative reports whether the amount is below zero. Totals and inventory
// values must never be negative; net results may be.
func (m Money) IsNegative() bool {
	return m < 0
}

// ClampNonNegative returns the amount, floored at zero.
func (m Money) ClampNonNegative() Money {
	if m < 0 {
		return 0
	}
	return m
}
