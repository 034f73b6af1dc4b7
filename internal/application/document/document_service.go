package document

import (
	"context"

	"github.com/gestion/backend/internal/domain/document"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentService handles commercial document business operations
type DocumentService struct {
	documentRepo document.DocumentRepository
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo document.DocumentRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		logger:       logger,
	}
}

// Create creates a new draft commercial document
func (s *DocumentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDocumentRequest) (*DocumentResponse, error) {
	number, err := s.documentRepo.GenerateNumber(ctx, tenantID, req.Kind)
	if err != nil {
		return nil, err
	}

	doc, err := document.NewCommercialDocument(tenantID, number, req.Kind, req.PartnerID, req.PartnerName)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		doc.SetRemark(req.Remark)
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
		zap.String("kind", doc.Kind.String()))

	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByID retrieves a document by ID
func (s *DocumentService) GetByID(ctx context.Context, tenantID, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByNumber retrieves a document by its number
func (s *DocumentService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// List retrieves documents with filtering and pagination
func (s *DocumentService) List(ctx context.Context, tenantID uuid.UUID, filter DocumentListFilter) ([]DocumentListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Kind != nil {
		domainFilter.Filters["kind"] = filter.Kind.String()
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.PartnerID != nil {
		domainFilter.Filters["partner_id"] = *filter.PartnerID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	docs, err := s.documentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.documentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDocumentListItemResponses(docs), total, nil
}

// Issue finalizes a draft document
func (s *DocumentService) Issue(ctx context.Context, tenantID, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	if err := doc.Issue(); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document issued",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number))

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Cancel cancels a document
func (s *DocumentService) Cancel(ctx context.Context, tenantID, documentID uuid.UUID, req CancelDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	if err := doc.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document cancelled",
		zap.String("document_id", doc.ID.String()),
		zap.String("reason", req.Reason))

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Delete removes a draft document
func (s *DocumentService) Delete(ctx context.Context, tenantID, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return err
	}
	if !doc.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be deleted")
	}
	return s.documentRepo.Delete(ctx, doc.ID)
}
