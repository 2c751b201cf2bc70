package tui

import "testing"

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	target := []rune("a")
	input := []rune("a")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("n") {
		t.Fatalf("expected underlined current word style under the cursor")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if runes[6].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render(string(wrongSpace)) {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildStyledRunesCursorInsideTypedText(t *testing.T) {
	runes := buildStyledRunes([]rune("abc"), []rune("ab"), 1)
	if runes[1].s != correctStyle.Underline(true).Render("b") {
		t.Fatalf("expected underline on the rune under the cursor")
	}
	if runes[2].s != currentWordStyle.Render("c") {
		t.Fatalf("expected no underline after the cursor")
	}
}

func TestBuildStyledRunesShowsOverflow(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), []rune("abcd"), 4)
	if len(runes) != 4 {
		t.Fatalf("expected overflow runes to be drawn, got %d", len(runes))
	}
	if runes[3].s != overflowStyle.Render("d") {
		t.Fatalf("expected overflow style for extra input")
	}
}

func TestWrapStyledRunesBreaksAfterSpace(t *testing.T) {
	runes := make([]styledRune, 0)
	for _, r := range "one two three" {
		runes = append(runes, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	lines := wrapStyledRunes(runes, 8)
	want := []string{"one two ", "three"}
	if len(lines) != len(want) {
		t.Fatalf("unexpected lines %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapStyledRunesHardBreaksLongWords(t *testing.T) {
	runes := make([]styledRune, 0)
	for _, r := range "abcdefgh" {
		runes = append(runes, styledRune{s: string(r), width: 1})
	}
	lines := wrapStyledRunes(runes, 3)
	if len(lines) != 3 || lines[0] != "abc" || lines[2] != "gh" {
		t.Fatalf("unexpected lines %q", lines)
	}
}
