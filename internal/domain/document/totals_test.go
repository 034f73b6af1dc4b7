package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals_EmptyList(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.True(t, totals.Quantity.IsZero())
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.Empty(t, totals.TaxByRate)
}

func TestComputeTotals_SumsLineContributions(t *testing.T) {
	lines := []Line{
		ComputeLine(productLine(3, 10, 20, 21)),
		ComputeLine(productLine(1, 50, 0, 10)),
		ComputeLine(productLine(2, 7.5, 0, 21)),
	}

	totals := ComputeTotals(lines)

	expectedQty := lines[0].Quantity.Add(lines[1].Quantity).Add(lines[2].Quantity)
	expectedSubtotal := lines[0].Subtotal.Add(lines[1].Subtotal).Add(lines[2].Subtotal)
	expectedTax := lines[0].TaxAmount.Add(lines[1].TaxAmount).Add(lines[2].TaxAmount)
	expectedTotal := lines[0].Total.Add(lines[1].Total).Add(lines[2].Total)

	assert.True(t, totals.Quantity.Equal(expectedQty))
	assert.True(t, totals.Subtotal.Equal(expectedSubtotal))
	assert.True(t, totals.TaxAmount.Equal(expectedTax))
	assert.True(t, totals.Total.Equal(expectedTotal))
}

func TestComputeTotals_TaxBreakdownByRate(t *testing.T) {
	lines := []Line{
		ComputeLine(productLine(1, 100, 0, 21)),
		ComputeLine(productLine(1, 50, 0, 21)),
		ComputeLine(productLine(1, 30, 0, 10)),
	}

	totals := ComputeTotals(lines)
	require.Len(t, totals.TaxByRate, 2)

	bucket21 := totals.TaxByRate["21"]
	assert.Equal(t, "150.00", bucket21.Base.StringFixed(2))
	assert.Equal(t, "31.50", bucket21.Amount.StringFixed(2))

	bucket10 := totals.TaxByRate["10"]
	assert.Equal(t, "30.00", bucket10.Base.StringFixed(2))
	assert.Equal(t, "3.00", bucket10.Amount.StringFixed(2))
}

func TestTotals_Rounded(t *testing.T) {
	lines := []Line{
		ComputeLine(productLine(3, 0.333, 10, 21)),
	}

	rounded := ComputeTotals(lines).Rounded()

	// 0.8991 -> 0.90 with banker's rounding
	assert.Equal(t, "0.90", rounded.Subtotal.StringFixed(2))
	assert.Equal(t, "0.19", rounded.TaxAmount.StringFixed(2))
}
