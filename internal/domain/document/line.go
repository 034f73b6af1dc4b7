package document

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineType classifies a document line
type LineType string

const (
	LineTypeProduct  LineType = "product"
	LineTypeKit      LineType = "kit"
	LineTypeFreeText LineType = "free_text"
	LineTypeDiscount LineType = "discount"
)

// IsValid checks if the type is a valid LineType
func (t LineType) IsValid() bool {
	switch t {
	case LineTypeProduct, LineTypeKit, LineTypeFreeText, LineTypeDiscount:
		return true
	}
	return false
}

// KitComponent is one sub-component of a kit line.
// Selected is mutable only when Optional is true; a non-optional component
// is always selected.
type KitComponent struct {
	ProductID       uuid.UUID       `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"` // computed
	Optional        bool            `json:"optional"`
	Selected        bool            `json:"selected"`
}

// Line is one row of a commercial document.
// Subtotal, TaxAmount and Total are derived fields: they are produced only by
// ComputeLine and are never set directly by callers. Order is the 1-based
// position of the line and stays dense after every collection mutation.
type Line struct {
	ID    *uuid.UUID `json:"id,omitempty"` // absent for unsaved lines
	Order int        `json:"order"`
	Type  LineType   `json:"type"`

	ProductID       *uuid.UUID `json:"product_id,omitempty"`
	SKU             string     `json:"sku"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Unit            string     `json:"unit"`

	VariantID         *uuid.UUID        `json:"variant_id,omitempty"`
	VariantSKU        string            `json:"variant_sku,omitempty"`
	VariantAttributes map[string]string `json:"variant_attributes,omitempty"`
	VariantPriceDelta decimal.Decimal   `json:"variant_price_delta"` // informational, never used in arithmetic
	VariantCostDelta  decimal.Decimal   `json:"variant_cost_delta"`  // informational, never used in arithmetic

	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`

	Components []KitComponent `json:"components,omitempty"`

	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`

	// ShowComponents is a display toggle for kit expansion, not business data
	ShowComponents bool `json:"show_components"`
}

// IsKit returns true if the line is a kit line
func (l Line) IsKit() bool {
	return l.Type == LineTypeKit
}

// HasProduct returns true if the line references a catalog product
func (l Line) HasProduct() bool {
	return l.ProductID != nil
}

// Clone returns a deep copy of the line
func (l Line) Clone() Line {
	clone := l
	if l.ID != nil {
		id := *l.ID
		clone.ID = &id
	}
	if l.ProductID != nil {
		id := *l.ProductID
		clone.ProductID = &id
	}
	if l.VariantID != nil {
		id := *l.VariantID
		clone.VariantID = &id
	}
	if l.VariantAttributes != nil {
		clone.VariantAttributes = make(map[string]string, len(l.VariantAttributes))
		for k, v := range l.VariantAttributes {
			clone.VariantAttributes[k] = v
		}
	}
	if l.Components != nil {
		clone.Components = make([]KitComponent, len(l.Components))
		copy(clone.Components, l.Components)
	}
	return clone
}
