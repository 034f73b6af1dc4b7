package catalog

import (
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is a SKU-level variation of a base product (e.g. size/color).
// Variant prices are absolute, not deltas: when a variant is chosen its own
// selling/purchase price replaces the base product price on the line.
type Variant struct {
	shared.BaseEntity
	ProductID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	SKU           string            `gorm:"type:varchar(50);not null;index"`
	Attributes    map[string]string `gorm:"serializer:json"` // attribute combination, e.g. {"size":"M","color":"red"}
	PurchasePrice decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice  decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// NewVariant creates a new product variant
func NewVariant(productID uuid.UUID, sku string, attributes map[string]string) (*Variant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Variant must reference a product")
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if len(attributes) == 0 {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTES", "Variant must declare at least one attribute")
	}

	return &Variant{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		SKU:           strings.ToUpper(sku),
		Attributes:    attributes,
		PurchasePrice: decimal.Zero,
		SellingPrice:  decimal.Zero,
	}, nil
}

// SetPrices sets the variant's absolute purchase and selling prices
func (v *Variant) SetPrices(purchasePrice, sellingPrice valueobject.Money) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	v.PurchasePrice = purchasePrice.Amount()
	v.SellingPrice = sellingPrice.Amount()
	v.Touch()

	return nil
}

// SaleDelta returns the variant selling price relative to the base product.
// Deltas are informational only; line arithmetic uses the absolute variant price.
func (v *Variant) SaleDelta(p *Product) decimal.Decimal {
	return v.SellingPrice.Sub(p.SellingPrice)
}

// PurchaseDelta returns the variant purchase price relative to the base product
func (v *Variant) PurchaseDelta(p *Product) decimal.Decimal {
	return v.PurchasePrice.Sub(p.PurchasePrice)
}
