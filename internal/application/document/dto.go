package document

import (
	"time"

	"github.com/gestion/backend/internal/domain/document"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Document DTOs ====================

// CreateDocumentRequest represents a request to create a commercial document
type CreateDocumentRequest struct {
	Kind        document.DocumentKind `json:"kind" binding:"required"`
	PartnerID   uuid.UUID             `json:"partner_id" binding:"required"`
	PartnerName string                `json:"partner_name" binding:"required,min=1,max=200"`
	Remark      string                `json:"remark"`
}

// CancelDocumentRequest represents a request to cancel a document
type CancelDocumentRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// DocumentListFilter represents filter options for the document list
type DocumentListFilter struct {
	Search    string                   `form:"search"`
	Kind      *document.DocumentKind   `form:"kind"`
	Status    *document.DocumentStatus `form:"status"`
	PartnerID *uuid.UUID               `form:"partner_id"`
	StartDate *time.Time               `form:"start_date"`
	EndDate   *time.Time               `form:"end_date"`
	Page      int                      `form:"page" binding:"min=0"`
	PageSize  int                      `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string                   `form:"order_by"`
	OrderDir  string                   `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DocumentResponse represents a commercial document in API responses
type DocumentResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Number        string          `json:"number"`
	Kind          string          `json:"kind"`
	PartnerID     uuid.UUID       `json:"partner_id"`
	PartnerName   string          `json:"partner_name"`
	Lines         []LineResponse  `json:"lines"`
	LineCount     int             `json:"line_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	Status        string          `json:"status"`
	Remark        string          `json:"remark"`
	IssuedAt      *time.Time      `json:"issued_at,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// DocumentListItemResponse represents a document in list responses
type DocumentListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Kind        string          `json:"kind"`
	PartnerName string          `json:"partner_name"`
	LineCount   int             `json:"line_count"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ==================== Line DTOs ====================

// LineResponse represents one document line in API responses
type LineResponse struct {
	ID                *uuid.UUID              `json:"id,omitempty"`
	Order             int                     `json:"order"`
	Type              string                  `json:"type"`
	ProductID         *uuid.UUID              `json:"product_id,omitempty"`
	SKU               string                  `json:"sku"`
	Name              string                  `json:"name"`
	Description       string                  `json:"description"`
	LongDescription   string                  `json:"long_description,omitempty"`
	Unit              string                  `json:"unit"`
	VariantID         *uuid.UUID              `json:"variant_id,omitempty"`
	VariantSKU        string                  `json:"variant_sku,omitempty"`
	VariantAttributes map[string]string       `json:"variant_attributes,omitempty"`
	VariantPriceDelta decimal.Decimal         `json:"variant_price_delta"`
	Quantity          decimal.Decimal         `json:"quantity"`
	UnitPrice         decimal.Decimal         `json:"unit_price"`
	UnitCost          decimal.Decimal         `json:"unit_cost"`
	DiscountPercent   decimal.Decimal         `json:"discount_percent"`
	TaxRate           decimal.Decimal         `json:"tax_rate"`
	Components        []KitComponentResponse  `json:"components,omitempty"`
	ShowComponents    bool                    `json:"show_components"`
	Subtotal          decimal.Decimal         `json:"subtotal"`
	TaxAmount         decimal.Decimal         `json:"tax_amount"`
	Total             decimal.Decimal         `json:"total"`
}

// KitComponentResponse represents one kit component in API responses
type KitComponentResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Optional        bool            `json:"optional"`
	Selected        bool            `json:"selected"`
}

// TotalsResponse represents document-level totals in API responses
type TotalsResponse struct {
	Quantity  decimal.Decimal              `json:"quantity"`
	Subtotal  decimal.Decimal              `json:"subtotal"`
	TaxAmount decimal.Decimal              `json:"tax_amount"`
	Total     decimal.Decimal              `json:"total"`
	TaxByRate map[string]TaxBucketResponse `json:"tax_by_rate"`
}

// TaxBucketResponse represents one tax rate bucket in API responses
type TaxBucketResponse struct {
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// ==================== Session DTOs ====================

// AddLineRequest represents a request to append a line to a session
type AddLineRequest struct {
	Type document.LineType `json:"type"`
}

// UpdateLineRequest carries partial field updates for one session line.
// Nil fields are left untouched.
type UpdateLineRequest struct {
	Quantity        *decimal.Decimal        `json:"quantity"`
	UnitPrice       *decimal.Decimal        `json:"unit_price"`
	UnitCost        *decimal.Decimal        `json:"unit_cost"`
	DiscountPercent *decimal.Decimal        `json:"discount_percent"`
	TaxRate         *decimal.Decimal        `json:"tax_rate"`
	SKU             *string                 `json:"sku"`
	Name            *string                 `json:"name"`
	Description     *string                 `json:"description"`
	LongDescription *string                 `json:"long_description"`
	Unit            *string                 `json:"unit"`
	ShowComponents  *bool                   `json:"show_components"`
	ComponentToggle *ComponentToggleRequest `json:"component_toggle"`
}

// ComponentToggleRequest selects or deselects one optional kit component
type ComponentToggleRequest struct {
	Index    int  `json:"index"`
	Selected bool `json:"selected"`
}

// MoveLineRequest represents a request to move a line up or down
type MoveLineRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// BindProductRequest represents a request to bind a catalog product to a line
type BindProductRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
}

// ConfirmVariantRequest represents a request to confirm the pending variant selection
type ConfirmVariantRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
}

// KeyEventRequest represents a key press forwarded from the editing grid
type KeyEventRequest struct {
	Key       document.Key   `json:"key" binding:"required"`
	Ctrl      bool           `json:"ctrl"`
	Field     document.Field `json:"field"`
	LineIndex int            `json:"line_index"`
}

// FocusHintResponse represents a suggested focus target
type FocusHintResponse struct {
	LineIndex  int    `json:"line_index"`
	Field      string `json:"field"`
	SelectText bool   `json:"select_text"`
}

// SessionStateResponse is returned after every session operation.
// It carries the full line list, the recomputed totals and an optional focus
// hint, so the client never has to merge partial state.
type SessionStateResponse struct {
	SessionID    uuid.UUID          `json:"session_id"`
	DocumentID   uuid.UUID          `json:"document_id"`
	Kind         string             `json:"kind"`
	PurchaseMode bool               `json:"purchase_mode"`
	Lines        []LineResponse     `json:"lines"`
	Totals       TotalsResponse     `json:"totals"`
	Focus        *FocusHintResponse `json:"focus,omitempty"`
	SelectorOpen bool               `json:"selector_open"`
}

// KeyActionResponse is returned when a key event is mapped
type KeyActionResponse struct {
	Action string               `json:"action"`
	Focus  *FocusHintResponse   `json:"focus,omitempty"`
	State  SessionStateResponse `json:"state"`
}

// ==================== Mappers ====================

// ToDocumentResponse converts a domain document to its response DTO
func ToDocumentResponse(doc *document.CommercialDocument) DocumentResponse {
	return DocumentResponse{
		ID:            doc.ID,
		TenantID:      doc.TenantID,
		Number:        doc.Number,
		Kind:          doc.Kind.String(),
		PartnerID:     doc.PartnerID,
		PartnerName:   doc.PartnerName,
		Lines:         ToLineResponses(doc.Lines),
		LineCount:     len(doc.Lines),
		TotalQuantity: doc.TotalQuantity,
		NetAmount:     doc.NetAmount,
		TaxAmount:     doc.TaxAmount,
		GrossAmount:   doc.GrossAmount,
		Status:        string(doc.Status),
		Remark:        doc.Remark,
		IssuedAt:      doc.IssuedAt,
		CancelledAt:   doc.CancelledAt,
		CancelReason:  doc.CancelReason,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
		Version:       doc.Version,
	}
}

// ToDocumentListItemResponses converts domain documents to list item DTOs
func ToDocumentListItemResponses(docs []document.CommercialDocument) []DocumentListItemResponse {
	responses := make([]DocumentListItemResponse, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		responses = append(responses, DocumentListItemResponse{
			ID:          doc.ID,
			Number:      doc.Number,
			Kind:        doc.Kind.String(),
			PartnerName: doc.PartnerName,
			LineCount:   len(doc.Lines),
			GrossAmount: doc.GrossAmount,
			Status:      string(doc.Status),
			CreatedAt:   doc.CreatedAt,
		})
	}
	return responses
}

// ToLineResponse converts a domain line to its response DTO
func ToLineResponse(line document.Line) LineResponse {
	components := make([]KitComponentResponse, 0, len(line.Components))
	for _, c := range line.Components {
		components = append(components, KitComponentResponse{
			ProductID:       c.ProductID,
			SKU:             c.SKU,
			Name:            c.Name,
			Quantity:        c.Quantity,
			UnitPrice:       c.UnitPrice,
			DiscountPercent: c.DiscountPercent,
			TaxRate:         c.TaxRate,
			Subtotal:        c.Subtotal,
			Optional:        c.Optional,
			Selected:        c.Selected,
		})
	}
	if len(components) == 0 {
		components = nil
	}

	return LineResponse{
		ID:                line.ID,
		Order:             line.Order,
		Type:              string(line.Type),
		ProductID:         line.ProductID,
		SKU:               line.SKU,
		Name:              line.Name,
		Description:       line.Description,
		LongDescription:   line.LongDescription,
		Unit:              line.Unit,
		VariantID:         line.VariantID,
		VariantSKU:        line.VariantSKU,
		VariantAttributes: line.VariantAttributes,
		VariantPriceDelta: line.VariantPriceDelta,
		Quantity:          line.Quantity,
		UnitPrice:         line.UnitPrice,
		UnitCost:          line.UnitCost,
		DiscountPercent:   line.DiscountPercent,
		TaxRate:           line.TaxRate,
		Components:        components,
		ShowComponents:    line.ShowComponents,
		Subtotal:          line.Subtotal,
		TaxAmount:         line.TaxAmount,
		Total:             line.Total,
	}
}

// ToLineResponses converts domain lines to response DTOs
func ToLineResponses(lines []document.Line) []LineResponse {
	responses := make([]LineResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, ToLineResponse(line))
	}
	return responses
}

// ToTotalsResponse converts domain totals to the response DTO
func ToTotalsResponse(totals document.Totals) TotalsResponse {
	byRate := make(map[string]TaxBucketResponse, len(totals.TaxByRate))
	for key, bucket := range totals.TaxByRate {
		byRate[key] = TaxBucketResponse{
			Rate:   bucket.Rate,
			Base:   bucket.Base,
			Amount: bucket.Amount,
		}
	}
	return TotalsResponse{
		Quantity:  totals.Quantity,
		Subtotal:  totals.Subtotal,
		TaxAmount: totals.TaxAmount,
		Total:     totals.Total,
		TaxByRate: byRate,
	}
}

// ToFocusHintResponse converts a focus hint; invalid hints map to nil
func ToFocusHintResponse(hint document.FocusHint) *FocusHintResponse {
	if !hint.Valid() {
		return nil
	}
	return &FocusHintResponse{
		LineIndex:  hint.LineIndex,
		Field:      string(hint.Field),
		SelectText: hint.SelectText,
	}
}
