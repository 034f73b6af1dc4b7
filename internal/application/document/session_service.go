package document

import (
	"context"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/document"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EditingSessionService drives the line-editing workflow of one document.
// Each operation loads the session, replays it onto a line collection, applies
// the mutation and persists the session back, returning the full new state.
type EditingSessionService struct {
	documentRepo document.DocumentRepository
	productRepo  catalog.ProductRepository
	store        SessionStore
	logger       *zap.Logger
}

// NewEditingSessionService creates a new EditingSessionService
func NewEditingSessionService(documentRepo document.DocumentRepository, productRepo catalog.ProductRepository, store SessionStore, logger *zap.Logger) *EditingSessionService {
	return &EditingSessionService{
		documentRepo: documentRepo,
		productRepo:  productRepo,
		store:        store,
		logger:       logger,
	}
}

// Open starts an editing session over a draft document
func (s *EditingSessionService) Open(ctx context.Context, tenantID, documentID uuid.UUID) (*SessionStateResponse, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot edit a non-draft document")
	}

	session := NewEditingSession(tenantID, doc)
	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("editing session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("document_id", documentID.String()),
		zap.String("kind", doc.Kind.String()))

	state := s.toState(session, document.NoFocus())
	return &state, nil
}

// Get returns the current state of a session
func (s *EditingSessionService) Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*SessionStateResponse, error) {
	session, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	state := s.toState(session, document.NoFocus())
	return &state, nil
}

// AddLine appends a new empty line to the session
func (s *EditingSessionService) AddLine(ctx context.Context, tenantID, sessionID uuid.UUID, req AddLineRequest) (*SessionStateResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
		return c.AddLine(req.Type)
	})
}

// UpdateLine merges a partial update into the line at index
func (s *EditingSessionService) UpdateLine(ctx context.Context, tenantID, sessionID uuid.UUID, index int, req UpdateLineRequest) (*SessionStateResponse, error) {
	patch := document.LinePatch{
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		UnitCost:        req.UnitCost,
		DiscountPercent: req.DiscountPercent,
		TaxRate:         req.TaxRate,
		SKU:             req.SKU,
		Name:            req.Name,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Unit:            req.Unit,
		ShowComponents:  req.ShowComponents,
	}
	if req.ComponentToggle != nil {
		patch.ComponentToggle = &document.ComponentToggle{
			Index:    req.ComponentToggle.Index,
			Selected: req.ComponentToggle.Selected,
		}
	}

	return s.mutate(ctx, tenantID, sessionID, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
		c.UpdateLine(index, patch)
		return document.NoFocus()
	})
}

// RemoveLine removes the line at index
func (s *EditingSessionService) RemoveLine(ctx context.Context, tenantID, sessionID uuid.UUID, index int) (*SessionStateResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
		c.RemoveLine(index)
		return document.NoFocus()
	})
}

// DuplicateLine clones the line at index to the end of the list
func (s *EditingSessionService) DuplicateLine(ctx context.Context, tenantID, sessionID uuid.UUID, index int) (*SessionStateResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
		c.DuplicateLine(index)
		return document.NoFocus()
	})
}

// MoveLine moves the line at index one position up or down
func (s *EditingSessionService) MoveLine(ctx context.Context, tenantID, sessionID uuid.UUID, index int, req MoveLineRequest) (*SessionStateResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
		if req.Direction == "up" {
			c.MoveUp(index)
		} else {
			c.MoveDown(index)
		}
		return document.NoFocus()
	})
}

// BindProduct binds a catalog product to the line at index.
// When the product has variants and no variant is named, the variant selector
// opens instead and the line is left untouched until Confirm or Cancel.
func (s *EditingSessionService) BindProduct(ctx context.Context, tenantID, sessionID uuid.UUID, index int, req BindProductRequest) (*SessionStateResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}

	var variant *catalog.Variant
	if req.VariantID != nil {
		variant, err = s.findVariantOf(ctx, tenantID, product, *req.VariantID)
		if err != nil {
			return nil, err
		}
	} else if len(product.Variants) > 0 {
		return s.openSelector(ctx, tenantID, sessionID, product.ID, index)
	}

	return s.mutate(ctx, tenantID, sessionID, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
		binder := document.NewProductBinder(c, session.PurchaseMode)
		return binder.BindProduct(index, product, variant)
	})
}

// ConfirmVariant resolves the pending variant selection and binds the product
func (s *EditingSessionService) ConfirmVariant(ctx context.Context, tenantID, sessionID uuid.UUID, req ConfirmVariantRequest) (*SessionStateResponse, error) {
	session, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.SelectorOpen || session.PendingProductID == nil {
		return nil, shared.NewDomainError("SELECTOR_CLOSED", "No variant selection is pending")
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, *session.PendingProductID)
	if err != nil {
		return nil, err
	}
	variant, err := s.findVariantOf(ctx, tenantID, product, req.VariantID)
	if err != nil {
		return nil, err
	}

	index := session.PendingLineIndex
	session.SelectorOpen = false
	session.PendingProductID = nil
	session.PendingLineIndex = -1

	hint := s.applyToSession(session, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
		binder := document.NewProductBinder(c, session.PurchaseMode)
		return binder.BindProduct(index, product, variant)
	})

	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	state := s.toState(session, hint)
	return &state, nil
}

// CancelVariant discards the pending variant selection without binding
func (s *EditingSessionService) CancelVariant(ctx context.Context, tenantID, sessionID uuid.UUID) (*SessionStateResponse, error) {
	session, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	session.SelectorOpen = false
	session.PendingProductID = nil
	session.PendingLineIndex = -1
	session.Touch()

	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	state := s.toState(session, document.NoFocus())
	return &state, nil
}

// HandleKeyEvent maps a grid key press to a session operation
func (s *EditingSessionService) HandleKeyEvent(ctx context.Context, tenantID, sessionID uuid.UUID, req KeyEventRequest) (*KeyActionResponse, error) {
	session, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	event := document.KeyEvent{
		Key:       req.Key,
		Ctrl:      req.Ctrl,
		Field:     req.Field,
		LineIndex: req.LineIndex,
	}
	action := document.MapKeyEvent(event, len(session.Lines))

	hint := action.Focus
	if action.Type == document.ActionAppendLine {
		hint = s.applyToSession(session, func(session *EditingSession, c *document.LineCollection) document.FocusHint {
			return c.AddLine(document.LineTypeProduct)
		})
		if err := s.store.Put(ctx, session); err != nil {
			return nil, err
		}
	}

	return &KeyActionResponse{
		Action: string(action.Type),
		Focus:  ToFocusHintResponse(hint),
		State:  s.toState(session, document.NoFocus()),
	}, nil
}

// Save writes the session's line list back into the document and persists it
func (s *EditingSessionService) Save(ctx context.Context, tenantID, sessionID uuid.UUID) (*DocumentResponse, error) {
	session, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, session.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := doc.ReplaceLines(session.Lines); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("editing session saved",
		zap.String("session_id", sessionID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.Int("line_count", len(doc.Lines)))

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Close discards the session without saving
func (s *EditingSessionService) Close(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	return s.store.Delete(ctx, tenantID, sessionID)
}

// findVariantOf loads a variant and checks it belongs to the given product.
// FindVariant is only tenant-scoped; the ownership check keeps a variant of
// one product from being bound onto another.
func (s *EditingSessionService) findVariantOf(ctx context.Context, tenantID uuid.UUID, product *catalog.Product, variantID uuid.UUID) (*catalog.Variant, error) {
	variant, err := s.productRepo.FindVariant(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}
	if variant.ProductID != product.ID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Variant does not belong to the selected product")
	}
	return variant, nil
}

func (s *EditingSessionService) openSelector(ctx context.Context, tenantID, sessionID, productID uuid.UUID, index int) (*SessionStateResponse, error) {
	session, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	session.SelectorOpen = true
	session.PendingProductID = &productID
	session.PendingLineIndex = index
	session.Touch()

	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	state := s.toState(session, document.NoFocus())
	return &state, nil
}

// mutate loads the session, applies op over a line collection and stores the
// result
func (s *EditingSessionService) mutate(ctx context.Context, tenantID, sessionID uuid.UUID, op func(*EditingSession, *document.LineCollection) document.FocusHint) (*SessionStateResponse, error) {
	session, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	hint := s.applyToSession(session, op)

	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	state := s.toState(session, hint)
	return &state, nil
}

func (s *EditingSessionService) applyToSession(session *EditingSession, op func(*EditingSession, *document.LineCollection) document.FocusHint) document.FocusHint {
	collection := document.NewLineCollection(session.Lines, func(lines []document.Line) {
		session.Lines = lines
	})
	hint := op(session, collection)
	session.Touch()
	return hint
}

func (s *EditingSessionService) toState(session *EditingSession, hint document.FocusHint) SessionStateResponse {
	totals := document.ComputeTotals(session.Lines).Rounded()
	return SessionStateResponse{
		SessionID:    session.ID,
		DocumentID:   session.DocumentID,
		Kind:         session.Kind.String(),
		PurchaseMode: session.PurchaseMode,
		Lines:        ToLineResponses(session.Lines),
		Totals:       ToTotalsResponse(totals),
		Focus:        ToFocusHintResponse(hint),
		SelectorOpen: session.SelectorOpen,
	}
}
