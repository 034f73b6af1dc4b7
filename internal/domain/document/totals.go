package document

import (
	"github.com/shopspring/decimal"
)

// TaxBucket accumulates the taxable base and tax amount for one tax rate
type TaxBucket struct {
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// Totals is the document-level aggregate over all lines
type Totals struct {
	Quantity  decimal.Decimal      `json:"quantity"`
	Subtotal  decimal.Decimal      `json:"subtotal"`
	TaxAmount decimal.Decimal      `json:"tax_amount"`
	Total     decimal.Decimal      `json:"total"`
	TaxByRate map[string]TaxBucket `json:"tax_by_rate"`
}

// ZeroTotals returns an all-zero Totals
func ZeroTotals() Totals {
	return Totals{
		Quantity:  decimal.Zero,
		Subtotal:  decimal.Zero,
		TaxAmount: decimal.Zero,
		Total:     decimal.Zero,
		TaxByRate: make(map[string]TaxBucket),
	}
}

// ComputeTotals folds the lines' derived fields into document-level totals.
// Lines are expected to have been run through ComputeLine already; the
// aggregator sums, it does not recompute. Total function over any list,
// including the empty one.
func ComputeTotals(lines []Line) Totals {
	totals := ZeroTotals()

	for _, line := range lines {
		totals.Quantity = totals.Quantity.Add(line.Quantity)
		totals.Subtotal = totals.Subtotal.Add(line.Subtotal)
		totals.TaxAmount = totals.TaxAmount.Add(line.TaxAmount)
		totals.Total = totals.Total.Add(line.Total)

		key := line.TaxRate.String()
		bucket, ok := totals.TaxByRate[key]
		if !ok {
			bucket = TaxBucket{Rate: line.TaxRate, Base: decimal.Zero, Amount: decimal.Zero}
		}
		bucket.Base = bucket.Base.Add(line.Subtotal)
		bucket.Amount = bucket.Amount.Add(line.TaxAmount)
		totals.TaxByRate[key] = bucket
	}

	return totals
}

// Rounded returns the totals with monetary fields rounded to two places using
// banker's rounding. This is the single rounding point of the engine.
func (t Totals) Rounded() Totals {
	rounded := Totals{
		Quantity:  t.Quantity,
		Subtotal:  t.Subtotal.RoundBank(2),
		TaxAmount: t.TaxAmount.RoundBank(2),
		Total:     t.Total.RoundBank(2),
		TaxByRate: make(map[string]TaxBucket, len(t.TaxByRate)),
	}
	for key, bucket := range t.TaxByRate {
		rounded.TaxByRate[key] = TaxBucket{
			Rate:   bucket.Rate,
			Base:   bucket.Base.RoundBank(2),
			Amount: bucket.Amount.RoundBank(2),
		}
	}
	return rounded
}
