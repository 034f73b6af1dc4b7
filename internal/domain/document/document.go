package document

import (
	"fmt"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind identifies which commercial document a line list belongs to
type DocumentKind string

const (
	DocumentKindQuote         DocumentKind = "quote"
	DocumentKindSalesOrder    DocumentKind = "sales_order"
	DocumentKindPurchaseOrder DocumentKind = "purchase_order"
	DocumentKindDeliveryNote  DocumentKind = "delivery_note"
	DocumentKindInvoice       DocumentKind = "invoice"
)

// IsValid checks if the kind is a valid DocumentKind
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindQuote, DocumentKindSalesOrder, DocumentKindPurchaseOrder,
		DocumentKindDeliveryNote, DocumentKindInvoice:
		return true
	}
	return false
}

// IsPurchase reports whether the kind prices lines from the cost side
func (k DocumentKind) IsPurchase() bool {
	return k == DocumentKindPurchaseOrder
}

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// DocumentStatus represents the status of a commercial document
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusIssued    DocumentStatus = "ISSUED"
	DocumentStatusCancelled DocumentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusIssued, DocumentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s DocumentStatus) CanTransitionTo(target DocumentStatus) bool {
	switch s {
	case DocumentStatusDraft:
		return target == DocumentStatusIssued || target == DocumentStatusCancelled
	case DocumentStatusIssued:
		return target == DocumentStatusCancelled
	case DocumentStatusCancelled:
		return false // terminal
	}
	return false
}

// CommercialDocument is the aggregate root for quotes, orders, delivery notes
// and invoices. Line editing happens in an editing session against a
// LineCollection; the aggregate receives the finished list via ReplaceLines
// when the hosting screen submits.
type CommercialDocument struct {
	shared.TenantAggregateRoot
	Number      string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_document_tenant_number,priority:2"`
	Kind        DocumentKind `gorm:"type:varchar(20);not null;index"`
	PartnerID   uuid.UUID    `gorm:"type:uuid;not null;index"` // customer or supplier depending on kind
	PartnerName string       `gorm:"type:varchar(200);not null"`
	Lines       []Line       `gorm:"serializer:json"`

	TotalQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrossAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Status       DocumentStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Remark       string         `gorm:"type:text"`
	IssuedAt     *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CommercialDocument) TableName() string {
	return "commercial_documents"
}

// NewCommercialDocument creates a new draft commercial document
func NewCommercialDocument(tenantID uuid.UUID, number string, kind DocumentKind, partnerID uuid.UUID, partnerName string) (*CommercialDocument, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown document kind")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if partnerName == "" {
		return nil, shared.NewDomainError("INVALID_PARTNER_NAME", "Partner name cannot be empty")
	}

	doc := &CommercialDocument{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Kind:                kind,
		PartnerID:           partnerID,
		PartnerName:         partnerName,
		Lines:               make([]Line, 0),
		TotalQuantity:       decimal.Zero,
		NetAmount:           decimal.Zero,
		TaxAmount:           decimal.Zero,
		GrossAmount:         decimal.Zero,
		Status:              DocumentStatusDraft,
	}

	doc.AddDomainEvent(NewDocumentCreatedEvent(doc))

	return doc, nil
}

// PurchaseMode reports whether editing sessions for this document price lines
// from the cost side
func (d *CommercialDocument) PurchaseMode() bool {
	return d.Kind.IsPurchase()
}

// ReplaceLines replaces the document's line list with the submitted one.
// Lines are normalized (recomputed, renumbered) and the stored totals are
// refreshed, rounded to two places. Only allowed in DRAFT status.
func (d *CommercialDocument) ReplaceLines(lines []Line) error {
	if d.Status != DocumentStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot replace lines on a non-draft document")
	}

	d.Lines = normalize(lines)
	d.recalculateTotals()
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewDocumentLinesReplacedEvent(d))

	return nil
}

// SetRemark sets the document remark
func (d *CommercialDocument) SetRemark(remark string) {
	d.Remark = remark
	d.Touch()
}

// Issue finalizes the document, transitioning from DRAFT to ISSUED.
// Requires at least one line.
func (d *CommercialDocument) Issue() error {
	if !d.Status.CanTransitionTo(DocumentStatusIssued) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue document in %s status", d.Status))
	}
	if len(d.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot issue a document without lines")
	}

	now := time.Now()
	d.Status = DocumentStatusIssued
	d.IssuedAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewDocumentIssuedEvent(d))

	return nil
}

// Cancel cancels the document
func (d *CommercialDocument) Cancel(reason string) error {
	if !d.Status.CanTransitionTo(DocumentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel document in %s status", d.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	d.Status = DocumentStatusCancelled
	d.CancelledAt = &now
	d.CancelReason = reason
	d.UpdatedAt = now

	d.AddDomainEvent(NewDocumentCancelledEvent(d))

	return nil
}

// IsDraft returns true if the document is in draft status
func (d *CommercialDocument) IsDraft() bool {
	return d.Status == DocumentStatusDraft
}

// CanModify returns true if the document's lines can still be edited
func (d *CommercialDocument) CanModify() bool {
	return d.IsDraft()
}

// Totals returns the stored totals as a Totals value
func (d *CommercialDocument) Totals() Totals {
	return ComputeTotals(d.Lines).Rounded()
}

// GetNetAmountMoney returns the net amount as Money
func (d *CommercialDocument) GetNetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(d.NetAmount)
}

// GetGrossAmountMoney returns the gross amount as Money
func (d *CommercialDocument) GetGrossAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(d.GrossAmount)
}

// recalculateTotals refreshes the stored totals from the line list
func (d *CommercialDocument) recalculateTotals() {
	totals := ComputeTotals(d.Lines).Rounded()
	d.TotalQuantity = totals.Quantity
	d.NetAmount = totals.Subtotal
	d.TaxAmount = totals.TaxAmount
	d.GrossAmount = totals.Total
}
