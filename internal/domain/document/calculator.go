package document

import (
	"github.com/shopspring/decimal"
)

// ComputeLine derives the monetary fields of a line from its inputs.
// It is a pure function and idempotent: running it again over an already
// computed line yields the same result.
//
// Amounts are kept at full decimal precision here; rounding to two places
// happens only at the aggregation/display boundary (see Totals.Rounded), so
// rounding error never compounds across intermediate steps.
func ComputeLine(line Line) Line {
	qty := ToNonNegativeDecimal(line.Quantity)
	discount := ClampPercent(line.DiscountPercent)
	taxRate := ToNonNegativeDecimal(line.TaxRate)

	line.Quantity = qty
	line.DiscountPercent = discount
	line.TaxRate = taxRate

	subtotal := netAmount(qty, line.UnitPrice, discount)

	if line.IsKit() {
		for i := range line.Components {
			comp := &line.Components[i]
			// A non-optional component is always selected
			if !comp.Optional {
				comp.Selected = true
			}
			comp.Quantity = ToNonNegativeDecimal(comp.Quantity)
			comp.DiscountPercent = ClampPercent(comp.DiscountPercent)
			comp.Subtotal = netAmount(comp.Quantity, comp.UnitPrice, comp.DiscountPercent)
			if comp.Selected {
				subtotal = subtotal.Add(comp.Subtotal)
			}
		}
	}

	line.Subtotal = subtotal
	line.TaxAmount = subtotal.Mul(taxRate).Div(oneHundred)
	line.Total = line.Subtotal.Add(line.TaxAmount)

	return line
}

// netAmount computes quantity * price * (1 - discount/100)
func netAmount(qty, price, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
	return qty.Mul(price).Mul(factor)
}
