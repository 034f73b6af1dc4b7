package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeyEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     KeyEvent
		lineCount int
		want      KeyAction
	}{
		{
			name:      "ctrl+enter from product field appends",
			event:     KeyEvent{Key: KeyEnter, Ctrl: true, Field: FieldProduct, LineIndex: 0},
			lineCount: 3,
			want:      KeyAction{Type: ActionAppendLine, Focus: NoFocus()},
		},
		{
			name:      "ctrl+enter from middle line appends",
			event:     KeyEvent{Key: KeyEnter, Ctrl: true, Field: FieldQuantity, LineIndex: 1},
			lineCount: 3,
			want:      KeyAction{Type: ActionAppendLine, Focus: NoFocus()},
		},
		{
			name:      "enter on last line quantity appends",
			event:     KeyEvent{Key: KeyEnter, Field: FieldQuantity, LineIndex: 2},
			lineCount: 3,
			want:      KeyAction{Type: ActionAppendLine, Focus: NoFocus()},
		},
		{
			name:      "enter on middle line quantity is not intercepted",
			event:     KeyEvent{Key: KeyEnter, Field: FieldQuantity, LineIndex: 1},
			lineCount: 3,
			want:      KeyAction{Type: ActionNone, Focus: NoFocus()},
		},
		{
			name:      "enter on product field is not intercepted",
			event:     KeyEvent{Key: KeyEnter, Field: FieldProduct, LineIndex: 2},
			lineCount: 3,
			want:      KeyAction{Type: ActionNone, Focus: NoFocus()},
		},
		{
			name:      "arrow down moves focus to next quantity",
			event:     KeyEvent{Key: KeyArrowDown, Field: FieldQuantity, LineIndex: 0},
			lineCount: 3,
			want: KeyAction{
				Type:  ActionFocus,
				Focus: FocusHint{LineIndex: 1, Field: FieldQuantity, SelectText: true},
			},
		},
		{
			name:      "arrow down on last line does nothing",
			event:     KeyEvent{Key: KeyArrowDown, Field: FieldQuantity, LineIndex: 2},
			lineCount: 3,
			want:      KeyAction{Type: ActionNone, Focus: NoFocus()},
		},
		{
			name:      "arrow up moves focus to previous quantity",
			event:     KeyEvent{Key: KeyArrowUp, Field: FieldQuantity, LineIndex: 2},
			lineCount: 3,
			want: KeyAction{
				Type:  ActionFocus,
				Focus: FocusHint{LineIndex: 1, Field: FieldQuantity, SelectText: true},
			},
		},
		{
			name:      "arrow up on first line does nothing",
			event:     KeyEvent{Key: KeyArrowUp, Field: FieldQuantity, LineIndex: 0},
			lineCount: 3,
			want:      KeyAction{Type: ActionNone, Focus: NoFocus()},
		},
		{
			name:      "arrow keys on product field are not intercepted",
			event:     KeyEvent{Key: KeyArrowDown, Field: FieldProduct, LineIndex: 0},
			lineCount: 3,
			want:      KeyAction{Type: ActionNone, Focus: NoFocus()},
		},
		{
			name:      "empty list intercepts nothing but ctrl+enter",
			event:     KeyEvent{Key: KeyArrowDown, Field: FieldQuantity, LineIndex: 0},
			lineCount: 0,
			want:      KeyAction{Type: ActionNone, Focus: NoFocus()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapKeyEvent(tt.event, tt.lineCount))
		})
	}
}
