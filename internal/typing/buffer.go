// Package typing holds the player's edit buffer.
package typing

import "unicode/utf8"

// EditKind classifies a buffer mutation.
type EditKind int

const (
	// EditInsert adds text at the cursor.
	EditInsert EditKind = iota
	// EditDelete removes the rune before the cursor.
	EditDelete
)

// Buffer is the current input text plus a cursor measured in runes.
// The cursor always stays within [0, Len()].
type Buffer struct {
	runes  []rune
	cursor int
}

// Text returns the buffer contents.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// Cursor returns the cursor offset in runes.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// InsertChar inserts c at the cursor and moves the cursor past it.
func (b *Buffer) InsertChar(c rune) {
	b.insert([]rune{c})
}

// InsertString inserts s at the cursor and moves the cursor past it.
func (b *Buffer) InsertString(s string) {
	if s == "" {
		return
	}
	b.insert([]rune(s))
}

func (b *Buffer) insert(rs []rune) {
	b.clamp()
	out := make([]rune, 0, len(b.runes)+len(rs))
	out = append(out, b.runes[:b.cursor]...)
	out = append(out, rs...)
	out = append(out, b.runes[b.cursor:]...)
	b.runes = out
	b.cursor += len(rs)
}

// Backspace removes the rune before the cursor. It reports whether anything
// was removed.
func (b *Buffer) Backspace() bool {
	b.clamp()
	if b.cursor == 0 {
		return false
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
	return true
}

// MoveLeft moves the cursor one rune left.
func (b *Buffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
	b.clamp()
}

// MoveRight moves the cursor one rune right.
func (b *Buffer) MoveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
	b.clamp()
}

// Set replaces the contents and puts the cursor at the end.
func (b *Buffer) Set(s string) {
	b.runes = []rune(s)
	b.cursor = len(b.runes)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.runes = nil
	b.cursor = 0
}

// LastRune returns the final rune of the buffer, if any.
func (b *Buffer) LastRune() (rune, bool) {
	if len(b.runes) == 0 {
		return utf8.RuneError, false
	}
	return b.runes[len(b.runes)-1], true
}

func (b *Buffer) clamp() {
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor > len(b.runes) {
		b.cursor = len(b.runes)
	}
}
