package document

import (
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the document context
const (
	EventTypeDocumentCreated       = "document.created"
	EventTypeDocumentLinesReplaced = "document.lines_replaced"
	EventTypeDocumentIssued        = "document.issued"
	EventTypeDocumentCancelled     = "document.cancelled"
)

// DocumentCreatedEvent is published when a commercial document is created
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	Number string       `json:"number"`
	Kind   DocumentKind `json:"kind"`
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(d *CommercialDocument) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCreated, "CommercialDocument", d.ID, d.TenantID),
		Number:          d.Number,
		Kind:            d.Kind,
	}
}

// DocumentLinesReplacedEvent is published when the line list is submitted
type DocumentLinesReplacedEvent struct {
	shared.BaseDomainEvent
	LineCount   int             `json:"line_count"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
}

// NewDocumentLinesReplacedEvent creates a new DocumentLinesReplacedEvent
func NewDocumentLinesReplacedEvent(d *CommercialDocument) *DocumentLinesReplacedEvent {
	return &DocumentLinesReplacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentLinesReplaced, "CommercialDocument", d.ID, d.TenantID),
		LineCount:       len(d.Lines),
		GrossAmount:     d.GrossAmount,
	}
}

// DocumentIssuedEvent is published when a document is issued
type DocumentIssuedEvent struct {
	shared.BaseDomainEvent
	Number      string          `json:"number"`
	Kind        DocumentKind    `json:"kind"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
}

// NewDocumentIssuedEvent creates a new DocumentIssuedEvent
func NewDocumentIssuedEvent(d *CommercialDocument) *DocumentIssuedEvent {
	return &DocumentIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentIssued, "CommercialDocument", d.ID, d.TenantID),
		Number:          d.Number,
		Kind:            d.Kind,
		GrossAmount:     d.GrossAmount,
	}
}

// DocumentCancelledEvent is published when a document is cancelled
type DocumentCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewDocumentCancelledEvent creates a new DocumentCancelledEvent
func NewDocumentCancelledEvent(d *CommercialDocument) *DocumentCancelledEvent {
	return &DocumentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCancelled, "CommercialDocument", d.ID, d.TenantID),
		Number:          d.Number,
		Reason:          d.CancelReason,
	}
}
