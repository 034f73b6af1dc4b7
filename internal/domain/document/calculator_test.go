package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

func productLine(qty, price, discount, taxRate float64) Line {
	line := NewEmptyLine(1, LineTypeProduct)
	line.Quantity = d(qty)
	line.UnitPrice = d(price)
	line.DiscountPercent = d(discount)
	line.TaxRate = d(taxRate)
	return line
}

func TestComputeLine_SubtotalFormula(t *testing.T) {
	// quantity=3, unitPrice=10, discount=20%, tax=21%
	line := ComputeLine(productLine(3, 10, 20, 21))

	assert.Equal(t, "24.00", line.Subtotal.StringFixed(2))
	assert.Equal(t, "5.04", line.TaxAmount.StringFixed(2))
	assert.Equal(t, "29.04", line.Total.StringFixed(2))
}

func TestComputeLine_Idempotent(t *testing.T) {
	tests := []struct {
		name string
		line Line
	}{
		{"plain product line", productLine(3, 10, 20, 21)},
		{"zero line", NewEmptyLine(1, LineTypeProduct)},
		{"free text line", NewEmptyLine(2, LineTypeFreeText)},
		{
			"kit line",
			func() Line {
				line := NewEmptyLine(1, LineTypeKit)
				line.TaxRate = d(10)
				line.Components = []KitComponent{
					{Quantity: d(2), UnitPrice: d(5), Selected: true},
					{Quantity: d(1), UnitPrice: d(7), Optional: true, Selected: false},
				}
				return line
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := ComputeLine(tt.line)
			twice := ComputeLine(once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestComputeLine_KitOptionalExclusion(t *testing.T) {
	line := NewEmptyLine(1, LineTypeKit)
	line.Components = []KitComponent{
		{Name: "A", Quantity: d(1), UnitPrice: d(5), Selected: true},
		{Name: "B", Quantity: d(1), UnitPrice: d(7), Optional: true, Selected: false},
	}

	computed := ComputeLine(line)
	assert.Equal(t, "5.00", computed.Subtotal.StringFixed(2))

	computed.Components[1].Selected = true
	recomputed := ComputeLine(computed)
	assert.Equal(t, "12.00", recomputed.Subtotal.StringFixed(2))
}

func TestComputeLine_KitOwnQuantityAndComponents(t *testing.T) {
	line := NewEmptyLine(1, LineTypeKit)
	line.Quantity = d(2)
	line.UnitPrice = d(10)
	line.Components = []KitComponent{
		{Quantity: d(1), UnitPrice: d(5), Selected: true},
	}

	computed := ComputeLine(line)
	// 2*10 + 1*5
	assert.Equal(t, "25.00", computed.Subtotal.StringFixed(2))
}

func TestComputeLine_NonOptionalComponentAlwaysSelected(t *testing.T) {
	line := NewEmptyLine(1, LineTypeKit)
	line.Components = []KitComponent{
		{Quantity: d(1), UnitPrice: d(5), Optional: false, Selected: false},
	}

	computed := ComputeLine(line)
	require.Len(t, computed.Components, 1)
	assert.True(t, computed.Components[0].Selected)
	assert.Equal(t, "5.00", computed.Subtotal.StringFixed(2))
}

func TestComputeLine_ComponentDiscount(t *testing.T) {
	line := NewEmptyLine(1, LineTypeKit)
	line.Components = []KitComponent{
		{Quantity: d(2), UnitPrice: d(10), DiscountPercent: d(50), Selected: true},
	}

	computed := ComputeLine(line)
	assert.Equal(t, "10.00", computed.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", computed.Components[0].Subtotal.StringFixed(2))
}

func TestComputeLine_CoercesInvalidInputs(t *testing.T) {
	line := productLine(5, 10, 0, 21)
	line.Quantity = d(-5)
	line.DiscountPercent = d(150)
	line.TaxRate = d(-21)

	computed := ComputeLine(line)

	assert.True(t, computed.Quantity.IsZero())
	assert.Equal(t, "100", computed.DiscountPercent.String())
	assert.True(t, computed.TaxRate.IsZero())
	assert.True(t, computed.Subtotal.IsZero())
	assert.True(t, computed.Total.IsZero())
}

func TestComputeLine_NoIntermediateRounding(t *testing.T) {
	// 3 * 0.333 * (1 - 0.10) = 0.89910 exactly; rounding happens only at
	// the aggregation boundary
	line := productLine(3, 0.333, 10, 0)
	computed := ComputeLine(line)
	assert.Equal(t, "0.8991", computed.Subtotal.String())
}
