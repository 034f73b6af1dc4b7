package document

import (
	"testing"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProduct(t *testing.T, purchase, selling, taxRate float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), "WIDGET-1", "Widget", "pcs")
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(valueobject.NewMoneyEUR(d(purchase)), valueobject.NewMoneyEUR(d(selling))))
	require.NoError(t, product.SetTaxRate(d(taxRate)))
	return product
}

func makeVariant(t *testing.T, product *catalog.Product, sku string, purchase, selling float64) *catalog.Variant {
	t.Helper()
	variant, err := catalog.NewVariant(product.ID, sku, map[string]string{"size": "M"})
	require.NoError(t, err)
	require.NoError(t, variant.SetPrices(valueobject.NewMoneyEUR(d(purchase)), valueobject.NewMoneyEUR(d(selling))))
	return variant
}

func makeKit(t *testing.T, taxRate float64, components []catalog.KitComponentSpec) *catalog.Product {
	t.Helper()
	kit, err := catalog.NewKitProduct(uuid.New(), "KIT-1", "Starter kit", "pcs", components)
	require.NoError(t, err)
	require.NoError(t, kit.SetTaxRate(d(taxRate)))
	return kit
}

func TestBindProduct_PopulatesLineFromCatalog(t *testing.T) {
	product := makeProduct(t, 60, 100, 21)
	c := NewLineCollection([]Line{NewEmptyLine(1, LineTypeProduct)}, nil)
	binder := NewProductBinder(c, false)

	hint := binder.BindProduct(0, product, nil)

	line := c.Lines()[0]
	require.NotNil(t, line.ProductID)
	assert.Equal(t, product.ID, *line.ProductID)
	assert.Equal(t, "WIDGET-1", line.SKU)
	assert.Equal(t, "Widget", line.Name)
	assert.Equal(t, "pcs", line.Unit)
	assert.Equal(t, "100", line.UnitPrice.String())
	assert.Equal(t, "60", line.UnitCost.String())
	assert.Equal(t, "21", line.TaxRate.String())
	assert.Equal(t, FocusHint{LineIndex: 0, Field: FieldQuantity, SelectText: true}, hint)
}

func TestBindProduct_PurchaseModePricesFromCostSide(t *testing.T) {
	product := makeProduct(t, 60, 100, 21)
	c := NewLineCollection([]Line{NewEmptyLine(1, LineTypeProduct)}, nil)
	binder := NewProductBinder(c, true)

	binder.BindProduct(0, product, nil)

	assert.Equal(t, "60", c.Lines()[0].UnitPrice.String())
}

func TestBindProduct_VariantPriceIsAuthoritative(t *testing.T) {
	product := makeProduct(t, 60, 100, 21)
	variant := makeVariant(t, product, "WIDGET-1-M", 70, 120)
	c := NewLineCollection([]Line{NewEmptyLine(1, LineTypeProduct)}, nil)
	binder := NewProductBinder(c, false)

	binder.BindProduct(0, product, variant)

	line := c.Lines()[0]
	// absolute variant price, not base price plus delta
	assert.Equal(t, "120", line.UnitPrice.String())
	assert.Equal(t, "70", line.UnitCost.String())
	assert.Equal(t, "WIDGET-1-M", line.SKU)
	assert.Equal(t, "WIDGET-1-M", line.VariantSKU)
	require.NotNil(t, line.VariantID)
	assert.Equal(t, variant.ID, *line.VariantID)
	assert.Equal(t, map[string]string{"size": "M"}, line.VariantAttributes)
	assert.Equal(t, "20", line.VariantPriceDelta.String())
	assert.Equal(t, "10", line.VariantCostDelta.String())
}

func TestBindProduct_RebindWithoutVariantClearsVariantFields(t *testing.T) {
	product := makeProduct(t, 60, 100, 21)
	variant := makeVariant(t, product, "WIDGET-1-M", 70, 120)
	c := NewLineCollection([]Line{NewEmptyLine(1, LineTypeProduct)}, nil)
	binder := NewProductBinder(c, false)

	binder.BindProduct(0, product, variant)
	binder.BindProduct(0, product, nil)

	line := c.Lines()[0]
	assert.Nil(t, line.VariantID)
	assert.Empty(t, line.VariantSKU)
	assert.Equal(t, "100", line.UnitPrice.String())
}

func TestBindProduct_KitExpansion(t *testing.T) {
	componentID := uuid.New()
	kit := makeKit(t, 10, []catalog.KitComponentSpec{
		{ProductID: componentID, SKU: "PART-A", Name: "Part A", Quantity: d(2), UnitPrice: d(5), UnitCost: d(3)},
		{ProductID: uuid.New(), SKU: "PART-B", Name: "Part B", Quantity: d(1), UnitPrice: d(7), UnitCost: d(4), Optional: true},
	})
	c := NewLineCollection([]Line{NewEmptyLine(1, LineTypeProduct)}, nil)
	binder := NewProductBinder(c, false)

	binder.BindProduct(0, kit, nil)

	line := c.Lines()[0]
	assert.Equal(t, LineTypeKit, line.Type)
	assert.True(t, line.ShowComponents)
	require.Len(t, line.Components, 2)

	fixed := line.Components[0]
	assert.Equal(t, componentID, fixed.ProductID)
	assert.Equal(t, "PART-A", fixed.SKU)
	assert.False(t, fixed.Optional)
	assert.True(t, fixed.Selected)
	// component tax rate comes from the parent kit, not the component catalog entry
	assert.Equal(t, "10", fixed.TaxRate.String())

	optional := line.Components[1]
	assert.True(t, optional.Optional)
	assert.False(t, optional.Selected)

	// only the selected component contributes: 2*5
	assert.Equal(t, "10.00", line.Subtotal.StringFixed(2))
}

func TestBindProduct_NilProductIsNoOp(t *testing.T) {
	var notified int
	c := NewLineCollection([]Line{NewEmptyLine(1, LineTypeProduct)}, func([]Line) { notified++ })
	binder := NewProductBinder(c, false)

	hint := binder.BindProduct(0, nil, nil)

	assert.Equal(t, NoFocus(), hint)
	assert.False(t, hint.Valid())
	assert.Zero(t, notified)
}

func TestBindProduct_OutOfRangeIsNoOp(t *testing.T) {
	product := makeProduct(t, 60, 100, 21)
	c := NewLineCollection(nil, nil)
	binder := NewProductBinder(c, false)

	hint := binder.BindProduct(3, product, nil)

	assert.Equal(t, NoFocus(), hint)
	assert.Zero(t, c.Len())
}
