package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiracer/internal/input"
)

func TestDecodeKeyRunes(t *testing.T) {
	events := decodeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Hé\x07")})
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %+v", events)
	}
	if events[0].Rune != 'H' || events[1].Rune != 'é' || events[0].Kind != input.Press {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestDecodeKeyNamed(t *testing.T) {
	cases := map[tea.KeyType]string{
		tea.KeyBackspace: input.KeyBackspace,
		tea.KeyEnter:     input.KeyEnter,
		tea.KeyEsc:       input.KeyEscape,
		tea.KeyLeft:      input.KeyLeft,
	}
	for typ, want := range cases {
		events := decodeKey(tea.KeyMsg{Type: typ})
		if len(events) != 1 || events[0].Key != want {
			t.Fatalf("key %v: expected %q, got %+v", typ, want, events)
		}
	}
}

func TestDecodeKeySpaceAndIgnored(t *testing.T) {
	events := decodeKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(events) != 1 || events[0].Rune != ' ' {
		t.Fatalf("expected a space press, got %+v", events)
	}
	if events := decodeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true}); events != nil {
		t.Fatalf("alt combinations must be dropped, got %+v", events)
	}
	if events := decodeKey(tea.KeyMsg{Type: tea.KeyF1}); events != nil {
		t.Fatalf("unmapped keys must be dropped, got %+v", events)
	}
}
