package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/document"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// number prefixes per document kind
var numberPrefixes = map[document.DocumentKind]string{
	document.DocumentKindQuote:         "QT",
	document.DocumentKindSalesOrder:    "SO",
	document.DocumentKindPurchaseOrder: "PO",
	document.DocumentKindDeliveryNote:  "DN",
	document.DocumentKindInvoice:       "INV",
}

// GormDocumentRepository implements document.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.CommercialDocument, error) {
	var doc document.CommercialDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByIDForTenant finds a document by ID within a tenant
func (r *GormDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.CommercialDocument, error) {
	var doc document.CommercialDocument
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByNumber finds a document by its number within a tenant
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*document.CommercialDocument, error) {
	var doc document.CommercialDocument
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds all documents matching the filter
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.CommercialDocument, error) {
	var docs []document.CommercialDocument
	query := r.applyFilter(r.db.WithContext(ctx).Model(&document.CommercialDocument{}), filter)

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindAllForTenant finds all documents for a tenant
func (r *GormDocumentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]document.CommercialDocument, error) {
	var docs []document.CommercialDocument
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&document.CommercialDocument{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.CommercialDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete deletes a document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&document.CommercialDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&document.CommercialDocument{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts documents for a tenant
func (r *GormDocumentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&document.CommercialDocument{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateNumber generates the next document number for a tenant and kind,
// e.g. QT-2026-0007. Numbers restart every year.
func (r *GormDocumentRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID, kind document.DocumentKind) (string, error) {
	prefix, ok := numberPrefixes[kind]
	if !ok {
		return "", shared.NewDomainError("INVALID_KIND", "Unknown document kind")
	}

	year := time.Now().Year()
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.CommercialDocument{}).
		Where("tenant_id = ? AND number LIKE ?", tenantID, pattern).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, year, count+1), nil
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}

	return query
}

func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(number) LIKE ? OR LOWER(partner_name) LIKE ?", search, search)
	}
	if kind, ok := filter.Filters["kind"]; ok {
		query = query.Where("kind = ?", kind)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if partnerID, ok := filter.Filters["partner_id"]; ok {
		query = query.Where("partner_id = ?", partnerID)
	}
	if start, ok := filter.Filters["start_date"]; ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := filter.Filters["end_date"]; ok {
		query = query.Where("created_at <= ?", end)
	}
	return query
}

var _ document.DocumentRepository = (*GormDocumentRepository)(nil)
