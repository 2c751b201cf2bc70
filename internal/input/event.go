// Package input routes decoded key events through a chain of handlers.
package input

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind distinguishes key presses from releases.
type Kind int

const (
	// Press is a key-down event.
	Press Kind = iota
	// Release is a key-up event.
	Release
)

func (k Kind) String() string {
	if k == Release {
		return "release"
	}
	return "press"
}

// Canonical names for non-printing keys.
const (
	KeySpace       = "SPACE"
	KeyEnter       = "ENTER"
	KeyTab         = "TAB"
	KeyBackspace   = "BACKSPACE"
	KeyEscape      = "ESC"
	KeyInsert      = "INSERT"
	KeyDelete      = "DELETE"
	KeyLeft        = "LEFT"
	KeyRight       = "RIGHT"
	KeyUp          = "UP"
	KeyDown        = "DOWN"
	KeyPassageEnd  = "PASSAGE_END"
	keyUnknownName = ""
)

// KeyEvent is one logical key event. Key holds the canonical uppercase name;
// Rune carries the typed character for printable keys and is zero otherwise.
type KeyEvent struct {
	Kind Kind
	Key  string
	Rune rune
}

// Printable reports whether the event carries a typed character.
func (e KeyEvent) Printable() bool {
	return e.Rune != 0
}

// PressKey builds a press event for a named key.
func PressKey(name string) KeyEvent {
	return KeyEvent{Kind: Press, Key: name}
}

// PressRune builds a press event for a typed character.
func PressRune(r rune) KeyEvent {
	return KeyEvent{Kind: Press, Key: KeyName(r), Rune: r}
}

// ReleaseKey builds a release event for a named key.
func ReleaseKey(name string) KeyEvent {
	return KeyEvent{Kind: Release, Key: name}
}

// KeyName maps a character to its canonical key name: letters are
// uppercased, space becomes SPACE, everything else is the character itself.
func KeyName(r rune) string {
	switch {
	case r == ' ':
		return KeySpace
	case r == '\t':
		return KeyTab
	case r == '\n' || r == '\r':
		return KeyEnter
	case r == utf8.RuneError || r == 0:
		return keyUnknownName
	case unicode.IsLetter(r):
		return string(unicode.ToUpper(r))
	default:
		return string(r)
	}
}

// Normalize uppercases a key name the way the canonical form expects.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
