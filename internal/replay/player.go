package replay

import "github.com/verte-zerg/tuiracer/internal/input"

// Player emits recorded events as synthetic key presses once their
// timestamps are due. At most one event is emitted per Tick.
type Player struct {
	events  []Event
	cursor  int
	startMs uint64
	started bool
	running bool
}

// NewPlayer returns an idle Player.
func NewPlayer() *Player {
	return &Player{}
}

// Start installs events and the playback start mark and arms the player.
// Event timestamps are compared against the now values given to Tick, so the
// caller must pass both on the same epoch (see Rebase).
func (p *Player) Start(events []Event, playbackStartMs uint64) {
	p.events = append([]Event(nil), events...)
	p.cursor = 0
	p.startMs = playbackStartMs
	p.started = true
	p.running = true
}

// Tick emits the next due event, if any.
func (p *Player) Tick(nowMs uint64) (input.KeyEvent, bool) {
	if !p.running || !p.started {
		return input.KeyEvent{}, false
	}
	if p.cursor >= len(p.events) {
		p.running = false
		return input.KeyEvent{}, false
	}
	e := p.events[p.cursor]
	if e.TimestampMs > nowMs {
		return input.KeyEvent{}, false
	}
	p.cursor++
	return KeyEventFor(e), true
}

// Stop halts playback and keeps the installed events.
func (p *Player) Stop() {
	p.running = false
}

// Running reports whether playback is active.
func (p *Player) Running() bool {
	return p.running
}

// Position returns the number of events emitted so far and the total.
func (p *Player) Position() (int, int) {
	return p.cursor, len(p.events)
}

// StartMs returns the playback start mark.
func (p *Player) StartMs() uint64 {
	return p.startMs
}

// KeyEventFor converts a recorded event into the key press that replays it.
func KeyEventFor(e Event) input.KeyEvent {
	switch {
	case e.Edit == EditDelete:
		return input.PressKey(input.KeyBackspace)
	case e.Character == Sentinel:
		return input.PressKey(input.KeyPassageEnd)
	default:
		return input.PressRune(e.Character)
	}
}
