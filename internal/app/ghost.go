package app

import (
	"github.com/verte-zerg/tuiracer/internal/input"
	"github.com/verte-zerg/tuiracer/internal/passage"
)

// Ghost follows a replayed run from the synthetic events the player emits.
type Ghost struct {
	lengths   []int
	index     int
	typed     int
	completed int
}

// Reset arms the ghost for the given passages.
func (g *Ghost) Reset(passages []passage.Passage) {
	g.lengths = g.lengths[:0]
	for _, p := range passages {
		g.lengths = append(g.lengths, p.Len())
	}
	g.index = 0
	g.typed = 0
	g.completed = 0
}

// HandleKey implements input.Handler for player-driven events.
func (g *Ghost) HandleKey(ev input.KeyEvent) bool {
	if ev.Kind != input.Press {
		return false
	}
	switch {
	case ev.Key == input.KeyPassageEnd:
		if g.index < len(g.lengths) {
			g.completed += g.lengths[g.index]
		}
		g.index++
		g.typed = 0
	case ev.Key == input.KeyBackspace:
		if g.typed > 0 {
			g.typed--
		}
	case ev.Printable():
		g.typed++
	default:
		return false
	}
	return true
}

// Index returns the passage the ghost is on.
func (g *Ghost) Index() int { return g.index }

// Chars returns the characters the ghost has typed over the race.
func (g *Ghost) Chars() int { return g.completed + g.typed }

// Progress returns the ghost's progress through its current passage in
// percent, clamped to 100. A ghost past the last passage reports 100.
func (g *Ghost) Progress() float64 {
	if g.index >= len(g.lengths) {
		if len(g.lengths) == 0 {
			return 0
		}
		return 100
	}
	n := g.lengths[g.index]
	if n == 0 {
		return 0
	}
	return min(100, 100*float64(g.typed)/float64(n))
}

// WPM returns the ghost's words per minute after elapsedMs of playback.
func (g *Ghost) WPM(elapsedMs uint64) float64 {
	if elapsedMs == 0 {
		return 0
	}
	minutes := float64(elapsedMs) / 60000.0
	return (float64(g.Chars()) / 5.0) / minutes
}
