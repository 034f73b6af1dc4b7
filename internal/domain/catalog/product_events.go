package catalog

import (
	"github.com/gestion/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated = "catalog.product.created"
	EventTypeProductUpdated = "catalog.product.updated"
)

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU  string      `json:"sku"`
	Name string      `json:"name"`
	Type ProductType `json:"product_type"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID, p.TenantID),
		SKU:             p.SKU,
		Name:            p.Name,
		Type:            p.Type,
	}
}

// ProductUpdatedEvent is published when a product changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID, p.TenantID),
		SKU:             p.SKU,
	}
}
