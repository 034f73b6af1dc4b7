package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	docapp "github.com/gestion/backend/internal/application/document"
	"github.com/gestion/backend/internal/domain/document"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockDocumentRepository implements document.DocumentRepository for testing
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.CommercialDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.CommercialDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.CommercialDocument, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.CommercialDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.CommercialDocument, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.CommercialDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]document.CommercialDocument, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.CommercialDocument), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *document.CommercialDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*document.CommercialDocument, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.CommercialDocument), args.Error(1)
}

func (m *MockDocumentRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID, kind document.DocumentKind) (string, error) {
	args := m.Called(ctx, tenantID, kind)
	return args.String(0), args.Error(1)
}

var _ document.DocumentRepository = (*MockDocumentRepository)(nil)

// Test helpers

func setupDocumentTestRouter() (*gin.Engine, *MockDocumentRepository, *DocumentHandler) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockDocumentRepository)
	service := docapp.NewDocumentService(mockRepo, zap.NewNop())
	handler := NewDocumentHandler(service)

	return gin.New(), mockRepo, handler
}

func createTestDocument(tenantID uuid.UUID, number string) *document.CommercialDocument {
	doc, _ := document.NewCommercialDocument(tenantID, number, document.DocumentKindQuote, uuid.New(), "Test Partner")
	return doc
}

// Tests

func TestDocumentHandler_Create(t *testing.T) {
	t.Run("should create document successfully", func(t *testing.T) {
		router, mockRepo, handler := setupDocumentTestRouter()

		tenantID := uuid.New()
		router.POST("/documents", handler.Create)

		mockRepo.On("GenerateNumber", mock.Anything, tenantID, document.DocumentKindQuote).
			Return("QT-2026-0001", nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*document.CommercialDocument")).
			Return(nil)

		reqBody := map[string]interface{}{
			"kind":         "quote",
			"partner_id":   uuid.New().String(),
			"partner_name": "Test Partner",
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/documents", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", tenantID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))

		mockRepo.AssertExpectations(t)
	})

	t.Run("should return error for missing partner name", func(t *testing.T) {
		router, _, handler := setupDocumentTestRouter()

		router.POST("/documents", handler.Create)

		reqBody := map[string]interface{}{
			"kind":       "quote",
			"partner_id": uuid.New().String(),
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/documents", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDocumentHandler_GetByID(t *testing.T) {
	t.Run("should get document by ID", func(t *testing.T) {
		router, mockRepo, handler := setupDocumentTestRouter()

		tenantID := uuid.New()
		doc := createTestDocument(tenantID, "QT-2026-0001")

		router.GET("/documents/:id", handler.GetByID)

		mockRepo.On("FindByIDForTenant", mock.Anything, tenantID, doc.ID).
			Return(doc, nil)

		req, _ := http.NewRequest(http.MethodGet, "/documents/"+doc.ID.String(), nil)
		req.Header.Set("X-Tenant-ID", tenantID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should return 404 for non-existent document", func(t *testing.T) {
		router, mockRepo, handler := setupDocumentTestRouter()

		tenantID := uuid.New()
		documentID := uuid.New()

		router.GET("/documents/:id", handler.GetByID)

		mockRepo.On("FindByIDForTenant", mock.Anything, tenantID, documentID).
			Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/documents/"+documentID.String(), nil)
		req.Header.Set("X-Tenant-ID", tenantID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return 400 for malformed ID", func(t *testing.T) {
		router, _, handler := setupDocumentTestRouter()

		router.GET("/documents/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/documents/not-a-uuid", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDocumentHandler_Cancel(t *testing.T) {
	t.Run("should cancel an issued document", func(t *testing.T) {
		router, mockRepo, handler := setupDocumentTestRouter()

		tenantID := uuid.New()
		doc := createTestDocument(tenantID, "INV-2026-0001")
		line := document.NewEmptyLine(1, document.LineTypeProduct)
		line.Name = "Widget"
		_ = doc.ReplaceLines([]document.Line{line})
		_ = doc.Issue()

		router.POST("/documents/:id/cancel", handler.Cancel)

		mockRepo.On("FindByIDForTenant", mock.Anything, tenantID, doc.ID).
			Return(doc, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*document.CommercialDocument")).
			Return(nil)

		body, _ := json.Marshal(map[string]string{"reason": "customer withdrew"})
		req, _ := http.NewRequest(http.MethodPost, "/documents/"+doc.ID.String()+"/cancel", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", tenantID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should return 422 when cancelling twice", func(t *testing.T) {
		router, mockRepo, handler := setupDocumentTestRouter()

		tenantID := uuid.New()
		doc := createTestDocument(tenantID, "INV-2026-0001")
		line := document.NewEmptyLine(1, document.LineTypeProduct)
		line.Name = "Widget"
		_ = doc.ReplaceLines([]document.Line{line})
		_ = doc.Issue()
		_ = doc.Cancel("first cancellation")

		router.POST("/documents/:id/cancel", handler.Cancel)

		mockRepo.On("FindByIDForTenant", mock.Anything, tenantID, doc.ID).
			Return(doc, nil)

		body, _ := json.Marshal(map[string]string{"reason": "second attempt"})
		req, _ := http.NewRequest(http.MethodPost, "/documents/"+doc.ID.String()+"/cancel", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", tenantID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
