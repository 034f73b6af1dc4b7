package catalog

import (
	"context"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.TenantRepository[Product]
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)
	FindVariant(ctx context.Context, tenantID, variantID uuid.UUID) (*Variant, error)
}
