package document

import (
	"context"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentRepository defines persistence operations for commercial documents
type DocumentRepository interface {
	shared.TenantRepository[CommercialDocument]
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*CommercialDocument, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID, kind DocumentKind) (string, error)
}
