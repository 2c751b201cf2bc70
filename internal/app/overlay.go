package app

import (
	"sort"

	"github.com/verte-zerg/tuiracer/internal/clock"
	"github.com/verte-zerg/tuiracer/internal/input"
)

// KeyDecay is how long a key stays lit after a press, in seconds.
const KeyDecay = 0.150

// Layout lists the tracked keys row by row, US QWERTY.
var Layout = [][]string{
	{"`", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "=", input.KeyBackspace},
	{input.KeyTab, "Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P", "[", "]", "\\"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L", ";", "'", input.KeyEnter},
	{"Z", "X", "C", "V", "B", "N", "M", ",", ".", "/"},
	{input.KeySpace},
}

// KeyState is the overlay's view of one key.
type KeyState struct {
	Pressed   bool
	LastPress clock.Instant
	Presses   int
}

// Keyboard tracks key presses for the on-screen overlay. It observes every
// event and never claims one.
type Keyboard struct {
	clk  clock.Clock
	keys map[string]*KeyState
}

// NewKeyboard returns an overlay seeded with the Layout keys.
func NewKeyboard(clk clock.Clock) *Keyboard {
	k := &Keyboard{clk: clk, keys: map[string]*KeyState{}}
	for _, row := range Layout {
		for _, name := range row {
			k.keys[name] = &KeyState{}
		}
	}
	return k
}

// HandleKey implements input.Handler.
func (k *Keyboard) HandleKey(ev input.KeyEvent) bool {
	name := shiftedBase(input.Normalize(ev.Key))
	st, ok := k.keys[name]
	if !ok {
		return false
	}
	switch ev.Kind {
	case input.Press:
		st.Pressed = true
		st.LastPress = k.clk.Now()
		st.Presses++
	case input.Release:
		st.Pressed = false
	}
	return false
}

// State returns the state of a key by canonical name.
func (k *Keyboard) State(name string) (KeyState, bool) {
	st, ok := k.keys[input.Normalize(name)]
	if !ok {
		return KeyState{}, false
	}
	return *st, true
}

// Lit reports whether a key was pressed within KeyDecay. Terminals do not
// report releases, so the decay stands in for the held state.
func (k *Keyboard) Lit(name string) bool {
	st, ok := k.keys[input.Normalize(name)]
	if !ok || st.LastPress == nil {
		return false
	}
	return st.LastPress.Elapsed() < KeyDecay
}

// MostUsed returns up to n keys with the most presses, never-pressed keys excluded.
func (k *Keyboard) MostUsed(n int) []string {
	names := k.ranked(func(a, b int) bool { return a > b })
	out := make([]string, 0, n)
	for _, name := range names {
		if len(out) == n || k.keys[name].Presses == 0 {
			break
		}
		out = append(out, name)
	}
	return out
}

// LeastUsed returns up to n keys with the fewest presses.
func (k *Keyboard) LeastUsed(n int) []string {
	names := k.ranked(func(a, b int) bool { return a < b })
	if n < len(names) {
		names = names[:n]
	}
	return names
}

// Reset clears all counters.
func (k *Keyboard) Reset() {
	for _, st := range k.keys {
		*st = KeyState{}
	}
}

func (k *Keyboard) ranked(less func(a, b int) bool) []string {
	names := make([]string, 0, len(k.keys))
	for name := range k.keys {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := k.keys[names[i]].Presses, k.keys[names[j]].Presses
		if a == b {
			return names[i] < names[j]
		}
		return less(a, b)
	})
	return names
}

var shifted = map[string]string{
	"~": "`", "!": "1", "@": "2", "#": "3", "$": "4", "%": "5", "^": "6", "&": "7", "*": "8",
	"(": "9", ")": "0", "_": "-", "+": "=", "{": "[", "}": "]", "|": "\\", ":": ";", "\"": "'",
	"<": ",", ">": ".", "?": "/",
}

// shiftedBase maps a shifted symbol to the key that produces it.
func shiftedBase(name string) string {
	if base, ok := shifted[name]; ok {
		return base
	}
	return name
}
