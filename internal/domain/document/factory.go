package document

import (
	"github.com/shopspring/decimal"
)

// NewEmptyLine creates an empty line for the given position and type.
// All commercial and derived fields start at zero; the operator fills them in
// (or a product bind populates them) afterwards.
func NewEmptyLine(order int, lineType LineType) Line {
	if !lineType.IsValid() {
		lineType = LineTypeProduct
	}
	return Line{
		Order:             order,
		Type:              lineType,
		Quantity:          decimal.Zero,
		UnitPrice:         decimal.Zero,
		UnitCost:          decimal.Zero,
		DiscountPercent:   decimal.Zero,
		TaxRate:           decimal.Zero,
		VariantPriceDelta: decimal.Zero,
		VariantCostDelta:  decimal.Zero,
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		Total:             decimal.Zero,
	}
}
