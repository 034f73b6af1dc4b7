package document

// Key identifies the keyboard keys the editing grid reacts to
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
)

// KeyEvent describes a key press on one of a line row's input fields
type KeyEvent struct {
	Key       Key   `json:"key"`
	Ctrl      bool  `json:"ctrl"`
	Field     Field `json:"field"`
	LineIndex int   `json:"line_index"`
}

// KeyActionType classifies the outcome of mapping a key event
type KeyActionType string

const (
	// ActionNone means the event is not intercepted; default behavior proceeds
	ActionNone KeyActionType = "none"
	// ActionAppendLine appends a new product line at the end of the list
	ActionAppendLine KeyActionType = "append_line"
	// ActionFocus moves focus to the target in Focus
	ActionFocus KeyActionType = "focus"
)

// KeyAction is the collection operation a key event maps to
type KeyAction struct {
	Type  KeyActionType `json:"type"`
	Focus FocusHint     `json:"focus"`
}

// MapKeyEvent maps a key event plus the current line count to an action.
// The engine only emits intents as data; the UI adapter owns the focus
// registry and performs the actual focus calls.
//
// Rules:
//   - Ctrl+Enter from any field always appends a new product line.
//   - Plain Enter from the quantity field appends only on the last line;
//     elsewhere the event is not intercepted.
//   - ArrowDown/ArrowUp from the quantity field move focus to the adjacent
//     line's quantity field, selecting its text.
func MapKeyEvent(event KeyEvent, lineCount int) KeyAction {
	switch event.Key {
	case KeyEnter:
		if event.Ctrl {
			return KeyAction{Type: ActionAppendLine, Focus: NoFocus()}
		}
		if event.Field == FieldQuantity && event.LineIndex == lineCount-1 {
			return KeyAction{Type: ActionAppendLine, Focus: NoFocus()}
		}
	case KeyArrowDown:
		if event.Field == FieldQuantity && event.LineIndex >= 0 && event.LineIndex < lineCount-1 {
			return KeyAction{
				Type:  ActionFocus,
				Focus: FocusHint{LineIndex: event.LineIndex + 1, Field: FieldQuantity, SelectText: true},
			}
		}
	case KeyArrowUp:
		if event.Field == FieldQuantity && event.LineIndex > 0 && event.LineIndex < lineCount {
			return KeyAction{
				Type:  ActionFocus,
				Focus: FocusHint{LineIndex: event.LineIndex - 1, Field: FieldQuantity, SelectText: true},
			}
		}
	}
	return KeyAction{Type: ActionNone, Focus: NoFocus()}
}
