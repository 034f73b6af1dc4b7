package catalog

import (
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType distinguishes simple products from composite kits
type ProductType string

const (
	ProductTypeStandard ProductType = "standard"
	ProductTypeKit      ProductType = "kit"
)

// IsValid checks if the type is a valid ProductType
func (t ProductType) IsValid() bool {
	return t == ProductTypeStandard || t == ProductTypeKit
}

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// KitComponentSpec declares one component of a kit product.
// Optional components can be deselected when the kit is placed on a document line.
type KitComponentSpec struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Optional  bool            `json:"optional"`
}

// Product represents a catalog product/SKU
// It is the aggregate root for product-related operations
type Product struct {
	shared.TenantAggregateRoot
	SKU             string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_sku,priority:2"`
	Name            string             `gorm:"type:varchar(200);not null"`
	Description     string             `gorm:"type:varchar(500)"`
	LongDescription string             `gorm:"type:text"`
	Unit            string             `gorm:"type:varchar(20);not null"`
	Type            ProductType        `gorm:"type:varchar(20);not null;default:'standard'"`
	PurchasePrice   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice    decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate         decimal.Decimal    `gorm:"type:decimal(9,4);not null;default:0"` // percent
	Components      []KitComponentSpec `gorm:"serializer:json"`
	Status          ProductStatus      `gorm:"type:varchar(20);not null;default:'active'"`
	Variants        []Variant          `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new standard product
func NewProduct(tenantID uuid.UUID, sku, name, unit string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 strings.ToUpper(sku),
		Name:                name,
		Unit:                unit,
		Type:                ProductTypeStandard,
		PurchasePrice:       decimal.Zero,
		SellingPrice:        decimal.Zero,
		TaxRate:             decimal.Zero,
		Status:              ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewKitProduct creates a new kit product with its component declarations
func NewKitProduct(tenantID uuid.UUID, sku, name, unit string, components []KitComponentSpec) (*Product, error) {
	product, err := NewProduct(tenantID, sku, name, unit)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, shared.NewDomainError("INVALID_KIT", "Kit must declare at least one component")
	}

	product.Type = ProductTypeKit
	product.Components = components

	return product, nil
}

// Update updates the product's descriptive information
func (p *Product) Update(name, description, longDescription string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.LongDescription = longDescription
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets both purchase and selling prices
func (p *Product) SetPrices(purchasePrice, sellingPrice valueobject.Money) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	p.PurchasePrice = purchasePrice.Amount()
	p.SellingPrice = sellingPrice.Amount()
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetTaxRate sets the tax rate (percent)
func (p *Product) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	p.TaxRate = rate
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetComponents replaces the kit component declarations
// Only allowed on kit products
func (p *Product) SetComponents(components []KitComponentSpec) error {
	if p.Type != ProductTypeKit {
		return shared.NewDomainError("NOT_A_KIT", "Only kit products can declare components")
	}
	if len(components) == 0 {
		return shared.NewDomainError("INVALID_KIT", "Kit must declare at least one component")
	}

	p.Components = components
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.Status = ProductStatusInactive
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.Touch()
	p.IncrementVersion()

	return nil
}

// IsKit returns true if the product is a kit
func (p *Product) IsKit() bool {
	return p.Type == ProductTypeKit
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// GetPurchasePriceMoney returns purchase price as Money value object
func (p *Product) GetPurchasePriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(p.PurchasePrice)
}

// GetSellingPriceMoney returns selling price as Money value object
func (p *Product) GetSellingPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(p.SellingPrice)
}

// validateSKU validates the product SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "Product SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "Product SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateUnit validates the unit
func validateUnit(unit string) error {
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return nil
}
