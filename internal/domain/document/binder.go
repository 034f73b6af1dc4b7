package document

import (
	"github.com/gestion/backend/internal/domain/catalog"
)

// ProductBinder maps a selected catalog product (and optional variant) onto a
// line's commercial fields. The purchase-mode flag is fixed for the lifetime
// of one editing session: purchase documents price lines from the cost side,
// sale documents from the sale side.
type ProductBinder struct {
	collection   *LineCollection
	purchaseMode bool
}

// NewProductBinder creates a binder over the given collection
func NewProductBinder(collection *LineCollection, purchaseMode bool) *ProductBinder {
	return &ProductBinder{collection: collection, purchaseMode: purchaseMode}
}

// PurchaseMode reports whether the binder prices from the cost side
func (b *ProductBinder) PurchaseMode() bool {
	return b.purchaseMode
}

// BindProduct populates the line at index from the product and optional
// variant, then requests focus on the line's quantity field so the operator's
// next keystroke edits quantity. Out-of-range index is a no-op.
//
// Variant prices are authoritative, not additive: when a variant is supplied
// the line's unit price is the variant's own absolute price and the deltas
// are recorded for display only.
func (b *ProductBinder) BindProduct(index int, product *catalog.Product, variant *catalog.Variant) FocusHint {
	if product == nil {
		return NoFocus()
	}

	ok := b.collection.ApplyLine(index, func(line Line) Line {
		productID := product.ID
		line.ProductID = &productID
		line.SKU = product.SKU
		line.Name = product.Name
		line.Description = product.Description
		line.LongDescription = product.LongDescription
		line.Unit = product.Unit
		line.TaxRate = ToNonNegativeDecimal(product.TaxRate)

		if b.purchaseMode {
			line.UnitPrice = product.PurchasePrice
		} else {
			line.UnitPrice = product.SellingPrice
		}
		line.UnitCost = product.PurchasePrice

		if variant != nil {
			variantID := variant.ID
			line.VariantID = &variantID
			line.VariantSKU = variant.SKU
			line.SKU = variant.SKU
			line.VariantAttributes = variant.Attributes
			line.VariantPriceDelta = variant.SaleDelta(product)
			line.VariantCostDelta = variant.PurchaseDelta(product)
			if b.purchaseMode {
				line.UnitPrice = variant.PurchasePrice
			} else {
				line.UnitPrice = variant.SellingPrice
			}
			line.UnitCost = variant.PurchasePrice
		} else {
			line.VariantID = nil
			line.VariantSKU = ""
			line.VariantAttributes = nil
		}

		if product.IsKit() {
			line.Type = LineTypeKit
			line.Components = expandKitComponents(product)
			line.ShowComponents = true
		} else {
			line.Type = LineTypeProduct
			line.Components = nil
		}

		return line
	})
	if !ok {
		return NoFocus()
	}
	return FocusHint{LineIndex: index, Field: FieldQuantity, SelectText: true}
}

// expandKitComponents turns the kit's declarations into line components.
// Component tax rates are inherited from the parent kit product, not from the
// component's own catalog entry.
func expandKitComponents(product *catalog.Product) []KitComponent {
	components := make([]KitComponent, 0, len(product.Components))
	for _, spec := range product.Components {
		components = append(components, KitComponent{
			ProductID: spec.ProductID,
			SKU:       spec.SKU,
			Name:      spec.Name,
			Quantity:  ToNonNegativeDecimal(spec.Quantity),
			UnitPrice: spec.UnitPrice,
			UnitCost:  spec.UnitCost,
			TaxRate:   ToNonNegativeDecimal(product.TaxRate),
			Optional:  spec.Optional,
			Selected:  !spec.Optional,
		})
	}
	return components
}
