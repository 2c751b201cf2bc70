package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiracer/internal/input"
)

// KeyMap holds the bindings handled by the TUI itself rather than the race.
type KeyMap struct {
	Quit     key.Binding
	Ghost    key.Binding
	Keyboard key.Binding
}

// DefaultKeyMap provides the default key bindings.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Ghost: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "toggle ghost"),
	),
	Keyboard: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle keyboard"),
	),
}

var namedKeys = map[tea.KeyType]string{
	tea.KeyEnter:     input.KeyEnter,
	tea.KeyTab:       input.KeyTab,
	tea.KeyBackspace: input.KeyBackspace,
	tea.KeyEsc:       input.KeyEscape,
	tea.KeyInsert:    input.KeyInsert,
	tea.KeyDelete:    input.KeyDelete,
	tea.KeyLeft:      input.KeyLeft,
	tea.KeyRight:     input.KeyRight,
	tea.KeyUp:        input.KeyUp,
	tea.KeyDown:      input.KeyDown,
}

// decodeKey converts a terminal key message into canonical key presses.
// Pasted text yields one press per rune; alt combinations are dropped.
func decodeKey(msg tea.KeyMsg) []input.KeyEvent {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeySpace:
		return []input.KeyEvent{input.PressRune(' ')}
	case tea.KeyRunes:
		events := make([]input.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if !unicode.IsPrint(r) {
				continue
			}
			events = append(events, input.PressRune(r))
		}
		return events
	}
	if name, ok := namedKeys[msg.Type]; ok {
		return []input.KeyEvent{input.PressKey(name)}
	}
	return nil
}
