package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const wrongSpace = '\u2022'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles the passage against the buffer. cursor is the
// buffer cursor; typed runes past the end of the passage are shown as errors.
func buildStyledRunes(targetRunes, inputRunes []rune, cursor int) []styledRune {
	words := findWords(targetRunes)
	currentWord := wordForCursor(words, cursor)

	out := make([]styledRune, 0, max(len(targetRunes), len(inputRunes)))
	for i, target := range targetRunes {
		displayed := target
		style := pendingStyle
		if i < len(inputRunes) {
			switch {
			case target == ' ' && inputRunes[i] != ' ':
				displayed = wrongSpace
				style = incorrectStyle
			case inputRunes[i] == target:
				style = correctStyle
			default:
				style = incorrectStyle
			}
		} else if target != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end {
			style = currentWordStyle
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, newStyledRune(displayed, style, target == ' '))
	}
	for i := len(targetRunes); i < len(inputRunes); i++ {
		style := overflowStyle
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, newStyledRune(inputRunes[i], style, inputRunes[i] == ' '))
	}
	return out
}

func newStyledRune(r rune, style lipgloss.Style, isSpace bool) styledRune {
	return styledRune{
		s:       style.Render(string(r)),
		width:   runewidth.RuneWidth(r),
		isSpace: isSpace,
	}
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	wordIdx := -1
	for i, w := range words {
		if cursorIndex >= w.start && cursorIndex < w.end {
			wordIdx = i
			break
		}
		if cursorIndex < w.start {
			wordIdx = i
			break
		}
	}
	if wordIdx == -1 {
		return &words[len(words)-1]
	}
	return &words[wordIdx]
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, preferring
// to break after a space.
func wrapStyledRunes(runes []styledRune, width int) []string {
	if width <= 0 {
		return []string{renderStyledRunes(runes)}
	}
	var lines []string
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width <= width || len(line) == 0 {
			line = append(line, item)
			lineWidth += item.width
			if item.isSpace {
				lastSpace = len(line) - 1
			}
			i++
			continue
		}
		if lastSpace < 0 {
			lines = append(lines, renderStyledRunes(line))
			line, lineWidth = line[:0], 0
			continue
		}
		// Keep the space on the line it ends so the cursor stays visible on it.
		lines = append(lines, renderStyledRunes(line[:lastSpace+1]))
		line = append([]styledRune{}, line[lastSpace+1:]...)
		lineWidth = lineWidthOf(line)
		lastSpace = lastSpaceIndex(line)
	}
	return append(lines, renderStyledRunes(line))
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
