package catalog

import (
	"time"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU             string              `json:"sku" binding:"required,min=1,max=50"`
	Name            string              `json:"name" binding:"required,min=1,max=200"`
	Description     string              `json:"description" binding:"max=500"`
	LongDescription string              `json:"long_description"`
	Unit            string              `json:"unit" binding:"required,min=1,max=20"`
	PurchasePrice   decimal.Decimal     `json:"purchase_price"`
	SellingPrice    decimal.Decimal     `json:"selling_price"`
	TaxRate         decimal.Decimal     `json:"tax_rate"`
	Components      []KitComponentInput `json:"components"`
}

// KitComponentInput declares one kit component in create/update requests
type KitComponentInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	SKU       string          `json:"sku" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Optional  bool            `json:"optional"`
}

// UpdateProductRequest represents a request to update product information
type UpdateProductRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Description     string `json:"description" binding:"max=500"`
	LongDescription string `json:"long_description"`
}

// SetPricesRequest represents a request to update product prices
type SetPricesRequest struct {
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price" binding:"required"`
}

// CreateVariantRequest represents a request to add a variant to a product
type CreateVariantRequest struct {
	SKU           string            `json:"sku" binding:"required,min=1,max=50"`
	Attributes    map[string]string `json:"attributes" binding:"required,min=1"`
	PurchasePrice decimal.Decimal   `json:"purchase_price"`
	SellingPrice  decimal.Decimal   `json:"selling_price"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=standard kit"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID              `json:"id"`
	TenantID        uuid.UUID              `json:"tenant_id"`
	SKU             string                 `json:"sku"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	LongDescription string                 `json:"long_description,omitempty"`
	Unit            string                 `json:"unit"`
	Type            string                 `json:"type"`
	PurchasePrice   decimal.Decimal        `json:"purchase_price"`
	SellingPrice    decimal.Decimal        `json:"selling_price"`
	TaxRate         decimal.Decimal        `json:"tax_rate"`
	Components      []KitComponentResponse `json:"components,omitempty"`
	Variants        []VariantResponse      `json:"variants,omitempty"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// KitComponentResponse represents a kit component declaration in API responses
type KitComponentResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Optional  bool            `json:"optional"`
}

// VariantResponse represents a product variant in API responses
type VariantResponse struct {
	ID            uuid.UUID         `json:"id"`
	ProductID     uuid.UUID         `json:"product_id"`
	SKU           string            `json:"sku"`
	Attributes    map[string]string `json:"attributes"`
	PurchasePrice decimal.Decimal   `json:"purchase_price"`
	SellingPrice  decimal.Decimal   `json:"selling_price"`
}

// ToProductResponse converts a domain product to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	components := make([]KitComponentResponse, 0, len(p.Components))
	for _, c := range p.Components {
		components = append(components, KitComponentResponse{
			ProductID: c.ProductID,
			SKU:       c.SKU,
			Name:      c.Name,
			Quantity:  c.Quantity,
			UnitPrice: c.UnitPrice,
			UnitCost:  c.UnitCost,
			Optional:  c.Optional,
		})
	}
	if len(components) == 0 {
		components = nil
	}

	variants := make([]VariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, ToVariantResponse(&p.Variants[i]))
	}
	if len(variants) == 0 {
		variants = nil
	}

	return ProductResponse{
		ID:              p.ID,
		TenantID:        p.TenantID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Unit:            p.Unit,
		Type:            string(p.Type),
		PurchasePrice:   p.PurchasePrice,
		SellingPrice:    p.SellingPrice,
		TaxRate:         p.TaxRate,
		Components:      components,
		Variants:        variants,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProductResponses converts domain products to response DTOs
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}

// ToVariantResponse converts a domain variant to its response DTO
func ToVariantResponse(v *catalog.Variant) VariantResponse {
	return VariantResponse{
		ID:            v.ID,
		ProductID:     v.ProductID,
		SKU:           v.SKU,
		Attributes:    v.Attributes,
		PurchasePrice: v.PurchasePrice,
		SellingPrice:  v.SellingPrice,
	}
}
