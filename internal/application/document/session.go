package document

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/document"
	"github.com/google/uuid"
)

// EditingSession is the transient state of one document-editing screen.
// It carries the working line list plus the variant-selector dialog state so
// the session can be resumed from any node holding the store.
type EditingSession struct {
	ID           uuid.UUID             `json:"id"`
	TenantID     uuid.UUID             `json:"tenant_id"`
	DocumentID   uuid.UUID             `json:"document_id"`
	Kind         document.DocumentKind `json:"kind"`
	PurchaseMode bool                  `json:"purchase_mode"`
	Lines        []document.Line       `json:"lines"`

	SelectorOpen     bool       `json:"selector_open"`
	PendingProductID *uuid.UUID `json:"pending_product_id,omitempty"`
	PendingLineIndex int        `json:"pending_line_index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEditingSession opens a session over the given document state
func NewEditingSession(tenantID uuid.UUID, doc *document.CommercialDocument) *EditingSession {
	now := time.Now()
	return &EditingSession{
		ID:               uuid.New(),
		TenantID:         tenantID,
		DocumentID:       doc.ID,
		Kind:             doc.Kind,
		PurchaseMode:     doc.PurchaseMode(),
		Lines:            doc.Lines,
		PendingLineIndex: -1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Touch refreshes the session's update timestamp
func (s *EditingSession) Touch() {
	s.UpdatedAt = time.Now()
}

// SessionStore persists editing sessions between requests.
// Implementations live in the infrastructure layer (in-memory, Redis).
type SessionStore interface {
	Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*EditingSession, error)
	Put(ctx context.Context, session *EditingSession) error
	Delete(ctx context.Context, tenantID, sessionID uuid.UUID) error
}
