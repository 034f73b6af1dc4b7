package document

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ToNonNegativeDecimal coerces negative values to zero.
// The engine never rejects numeric input; invalid values degrade to zero so
// that a keystroke can never crash an editing session.
func ToNonNegativeDecimal(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseNonNegativeDecimal parses a string into a non-negative decimal.
// Parse failures and negative values coerce to zero.
func ParseNonNegativeDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return ToNonNegativeDecimal(d)
}

// ClampPercent coerces a value into the 0..100 range
func ClampPercent(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(oneHundred) {
		return oneHundred
	}
	return d
}
