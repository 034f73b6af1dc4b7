package document

import (
	"github.com/shopspring/decimal"
)

// Field identifies an input field of a line row for focus purposes
type Field string

const (
	FieldProduct  Field = "product"
	FieldQuantity Field = "quantity"
)

// FocusHint is a suggested focus target returned by collection operations.
// The engine never touches UI elements; a UI adapter turns hints into actual
// focus calls.
type FocusHint struct {
	LineIndex  int   `json:"line_index"`
	Field      Field `json:"field"`
	SelectText bool  `json:"select_text"`
}

// NoFocus returns a hint that requests no focus change
func NoFocus() FocusHint {
	return FocusHint{LineIndex: -1}
}

// Valid returns true if the hint points at a line
func (h FocusHint) Valid() bool {
	return h.LineIndex >= 0
}

// Observer is notified with the complete new line list after every mutation
type Observer func(lines []Line)

// LinePatch carries partial field updates for UpdateLine.
// Nil fields are left untouched. Numeric fields pass through the coercion
// helpers, so negative or out-of-range values degrade instead of erroring.
type LinePatch struct {
	Quantity        *decimal.Decimal
	UnitPrice       *decimal.Decimal
	UnitCost        *decimal.Decimal
	DiscountPercent *decimal.Decimal
	TaxRate         *decimal.Decimal
	SKU             *string
	Name            *string
	Description     *string
	LongDescription *string
	Unit            *string
	ShowComponents  *bool
	ComponentToggle *ComponentToggle
}

// ComponentToggle selects or deselects one kit component by position.
// It only applies to components declared optional.
type ComponentToggle struct {
	Index    int
	Selected bool
}

// LineCollection owns the ordered line list for one document-editing session.
// Every mutation recomputes derived fields, keeps Order dense (1..N), and
// notifies the observer with the new list. All operations are total:
// out-of-range indices are silent no-ops, never panics. The collection sits
// directly in the UI interaction path where render/event races are possible.
type LineCollection struct {
	lines    []Line
	observer Observer
}

// NewLineCollection creates a collection seeded with the initial lines.
// The initial list is normalized (computed and renumbered) but the observer
// is not notified; loading is not a mutation.
func NewLineCollection(initial []Line, observer Observer) *LineCollection {
	c := &LineCollection{observer: observer}
	c.lines = normalize(initial)
	return c
}

// Lines returns a copy of the current line list
func (c *LineCollection) Lines() []Line {
	return cloneLines(c.lines)
}

// Len returns the number of lines
func (c *LineCollection) Len() int {
	return len(c.lines)
}

// Totals returns the document-level totals over the current lines
func (c *LineCollection) Totals() Totals {
	return ComputeTotals(c.lines)
}

// AddLine appends a new empty line of the given type and requests focus on
// its product selector
func (c *LineCollection) AddLine(lineType LineType) FocusHint {
	line := NewEmptyLine(len(c.lines)+1, lineType)
	c.lines = append(c.lines, ComputeLine(line))
	c.notify()
	return FocusHint{LineIndex: len(c.lines) - 1, Field: FieldProduct}
}

// RemoveLine removes the line at index and renumbers the remainder.
// Out-of-range index is a no-op.
func (c *LineCollection) RemoveLine(index int) {
	if !c.inRange(index) {
		return
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	c.renumber()
	c.notify()
}

// UpdateLine merges the patch into the line at index and recomputes it.
// Out-of-range index is a no-op.
func (c *LineCollection) UpdateLine(index int, patch LinePatch) {
	if !c.inRange(index) {
		return
	}
	line := c.lines[index]

	if patch.Quantity != nil {
		line.Quantity = ToNonNegativeDecimal(*patch.Quantity)
	}
	if patch.UnitPrice != nil {
		line.UnitPrice = *patch.UnitPrice
	}
	if patch.UnitCost != nil {
		line.UnitCost = *patch.UnitCost
	}
	if patch.DiscountPercent != nil {
		line.DiscountPercent = ClampPercent(*patch.DiscountPercent)
	}
	if patch.TaxRate != nil {
		line.TaxRate = ToNonNegativeDecimal(*patch.TaxRate)
	}
	if patch.SKU != nil {
		line.SKU = *patch.SKU
	}
	if patch.Name != nil {
		line.Name = *patch.Name
	}
	if patch.Description != nil {
		line.Description = *patch.Description
	}
	if patch.LongDescription != nil {
		line.LongDescription = *patch.LongDescription
	}
	if patch.Unit != nil {
		line.Unit = *patch.Unit
	}
	if patch.ShowComponents != nil {
		line.ShowComponents = *patch.ShowComponents
	}
	if t := patch.ComponentToggle; t != nil {
		if t.Index >= 0 && t.Index < len(line.Components) && line.Components[t.Index].Optional {
			line.Components[t.Index].Selected = t.Selected
		}
	}

	c.lines[index] = ComputeLine(line)
	c.notify()
}

// DuplicateLine clones the line at index and appends the clone at the end.
// The clone drops the persisted id so it is treated as a new line.
// Out-of-range index is a no-op.
func (c *LineCollection) DuplicateLine(index int) {
	if !c.inRange(index) {
		return
	}
	clone := c.lines[index].Clone()
	clone.ID = nil
	clone.Order = len(c.lines) + 1
	c.lines = append(c.lines, clone)
	c.notify()
}

// MoveUp swaps the line at index with its predecessor.
// No-op at index 0 or out of range.
func (c *LineCollection) MoveUp(index int) {
	if index <= 0 || index >= len(c.lines) {
		return
	}
	c.swap(index-1, index)
}

// MoveDown swaps the line at index with its successor.
// No-op at the last index or out of range.
func (c *LineCollection) MoveDown(index int) {
	if index < 0 || index >= len(c.lines)-1 {
		return
	}
	c.swap(index, index+1)
}

// SetLines replaces the whole list (used when loading an existing document)
// and notifies the observer
func (c *LineCollection) SetLines(lines []Line) {
	c.lines = normalize(lines)
	c.notify()
}

// ApplyLine replaces the line at index with the result of mutate, recomputes
// it and notifies. Used by the product binder. Out-of-range index is a no-op
// and returns false.
func (c *LineCollection) ApplyLine(index int, mutate func(Line) Line) bool {
	if !c.inRange(index) {
		return false
	}
	c.lines[index] = ComputeLine(mutate(c.lines[index]))
	c.notify()
	return true
}

func (c *LineCollection) swap(i, j int) {
	c.lines[i], c.lines[j] = c.lines[j], c.lines[i]
	c.lines[i].Order = i + 1
	c.lines[j].Order = j + 1
	c.notify()
}

func (c *LineCollection) inRange(index int) bool {
	return index >= 0 && index < len(c.lines)
}

func (c *LineCollection) renumber() {
	for i := range c.lines {
		c.lines[i].Order = i + 1
	}
}

func (c *LineCollection) notify() {
	if c.observer != nil {
		c.observer(cloneLines(c.lines))
	}
}

// normalize computes every line and renumbers the list densely
func normalize(lines []Line) []Line {
	normalized := make([]Line, len(lines))
	for i, line := range lines {
		line.Order = i + 1
		normalized[i] = ComputeLine(line)
	}
	return normalized
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i := range lines {
		out[i] = lines[i].Clone()
	}
	return out
}
