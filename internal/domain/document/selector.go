package document

import (
	"github.com/gestion/backend/internal/domain/catalog"
)

// VariantSelector models the variant-selection dialog flow:
// Closed -> Open(pending product, target line) -> Closed.
// The only transitions out of Open are a confirmed selection (which binds)
// or an explicit cancel (which discards the pending state).
type VariantSelector struct {
	binder    *ProductBinder
	open      bool
	pending   *catalog.Product
	lineIndex int
}

// NewVariantSelector creates a selector bound to the given binder
func NewVariantSelector(binder *ProductBinder) *VariantSelector {
	return &VariantSelector{binder: binder, lineIndex: -1}
}

// Open records the pending product and target line and opens the dialog
func (s *VariantSelector) Open(product *catalog.Product, lineIndex int) {
	if product == nil {
		return
	}
	s.open = true
	s.pending = product
	s.lineIndex = lineIndex
}

// IsOpen reports whether a selection is pending
func (s *VariantSelector) IsOpen() bool {
	return s.open
}

// Pending returns the pending product and target line index while open
func (s *VariantSelector) Pending() (*catalog.Product, int, bool) {
	if !s.open {
		return nil, -1, false
	}
	return s.pending, s.lineIndex, true
}

// Confirm closes the dialog and binds the pending product with the chosen
// variant. No-op when the dialog is closed.
func (s *VariantSelector) Confirm(variant *catalog.Variant) FocusHint {
	if !s.open {
		return NoFocus()
	}
	product, index := s.pending, s.lineIndex
	s.reset()
	return s.binder.BindProduct(index, product, variant)
}

// Cancel closes the dialog and discards the pending state without binding
func (s *VariantSelector) Cancel() {
	s.reset()
}

func (s *VariantSelector) reset() {
	s.open = false
	s.pending = nil
	s.lineIndex = -1
}
