// Package race implements the typing session state machine and its metrics.
package race

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/tuiracer/internal/clock"
	"github.com/verte-zerg/tuiracer/internal/passage"
	"github.com/verte-zerg/tuiracer/internal/replay"
	"github.com/verte-zerg/tuiracer/internal/typing"
)

// Status is the session lifecycle state.
type Status int

const (
	// NotStarted waits for Start.
	NotStarted Status = iota
	// Running accepts input and advances the timer.
	Running
	// Finished means every selected passage was completed.
	Finished
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "not started"
	}
}

// Outcome describes what a scored mutation did.
type Outcome int

const (
	// Ignored means the session was not running.
	Ignored Outcome = iota
	// Typed means the input was scored and recorded.
	Typed
	// Completed means the current passage was finished.
	Completed
)

// Session owns the selected passages, scoring state and the replay log of
// one race. The typing buffer belongs to the caller; the session clears it on
// start, reset and passage advance.
type Session struct {
	clk   clock.Clock
	buf   *typing.Buffer
	pool  []passage.Passage
	limit int

	passages []passage.Passage
	index    int
	status   Status
	errors   int
	start    clock.Instant
	elapsed  float64
	ghost    bool
	seed     string

	completedChars int
	startedAtMs    uint64

	replay replay.Log
}

// New returns a NotStarted session over pool. limit caps the passages per
// race; zero or less uses the whole pool.
func New(clk clock.Clock, buf *typing.Buffer, pool []passage.Passage, limit int) *Session {
	return &Session{
		clk:   clk,
		buf:   buf,
		pool:  append([]passage.Passage(nil), pool...),
		limit: limit,
	}
}

// SetPool replaces the passage pool used by the next Start.
func (s *Session) SetPool(pool []passage.Passage) {
	s.pool = append([]passage.Passage(nil), pool...)
}

// Start selects passages for seed and begins a race. An empty pool finishes
// the session immediately.
func (s *Session) Start(seed string) {
	s.seed = seed
	s.passages = passage.Select(s.pool, seed, s.limit)
	s.index = 0
	s.errors = 0
	s.elapsed = 0
	s.completedChars = 0
	s.buf.Clear()
	s.replay.Reset()
	s.start = s.clk.Now()
	s.startedAtMs = s.clk.EpochMillis()
	if len(s.passages) == 0 {
		s.status = Finished
		return
	}
	s.status = Running
}

// Reset returns to NotStarted and drops all race progress.
func (s *Session) Reset() {
	s.passages = nil
	s.index = 0
	s.errors = 0
	s.elapsed = 0
	s.completedChars = 0
	s.start = nil
	s.startedAtMs = 0
	s.status = NotStarted
	s.buf.Clear()
	s.replay.Reset()
}

// Score evaluates the buffer after a mutation of the given kind.
func (s *Session) Score(kind typing.EditKind) Outcome {
	if s.status != Running {
		return Ignored
	}
	current, ok := s.Current()
	if !ok {
		return Ignored
	}
	input := s.buf.Text()
	expected := current.MatchText
	if input != "" && !strings.HasPrefix(expected, input) {
		s.errors++
	}
	now := s.clk.EpochMillis()
	if input == expected {
		s.replay.Record(replay.Event{TimestampMs: now, PassageIndex: s.index, Character: replay.Sentinel})
		s.completedChars += utf8.RuneCountInString(expected)
		s.index++
		s.buf.Clear()
		if s.index >= len(s.passages) {
			s.elapsed = s.start.Elapsed()
			s.status = Finished
		}
		return Completed
	}
	if kind == typing.EditDelete {
		s.replay.Record(replay.Event{TimestampMs: now, PassageIndex: s.index, Edit: replay.EditDelete})
		return Typed
	}
	if last, ok := s.buf.LastRune(); ok {
		s.replay.Record(replay.Event{TimestampMs: now, PassageIndex: s.index, Character: last})
	}
	return Typed
}

// Tick refreshes the elapsed time while running and returns it.
func (s *Session) Tick() float64 {
	if s.status == Running && s.start != nil {
		s.elapsed = s.start.Elapsed()
	}
	return s.elapsed
}

// Current returns the passage being typed.
func (s *Session) Current() (passage.Passage, bool) {
	if s.index < 0 || s.index >= len(s.passages) {
		return passage.Passage{}, false
	}
	return s.passages[s.index], true
}

// Progress summarises the characters typed so far.
func (s *Session) Progress() Progress {
	p := Progress{
		Elapsed:        s.elapsed,
		Errors:         s.errors,
		CompletedChars: s.completedChars,
	}
	if current, ok := s.Current(); ok {
		p.PassageChars = current.Len()
		p.PassageTyped = correctPrefix(current.MatchText, s.buf.Text())
	}
	return p
}

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Index returns the current passage index.
func (s *Session) Index() int { return s.index }

// Passages returns the passages selected for the race.
func (s *Session) Passages() []passage.Passage {
	return append([]passage.Passage(nil), s.passages...)
}

// Errors returns the error counter.
func (s *Session) Errors() int { return s.errors }

// Elapsed returns the last computed elapsed seconds.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Seed returns the seed of the current race.
func (s *Session) Seed() string { return s.seed }

// StartedAtMs returns the wall-clock start of the race.
func (s *Session) StartedAtMs() uint64 { return s.startedAtMs }

// Ghost reports whether ghost mode is enabled.
func (s *Session) Ghost() bool { return s.ghost }

// SetGhost toggles ghost mode.
func (s *Session) SetGhost(on bool) { s.ghost = on }

// Replay returns a copy of the recorded events.
func (s *Session) Replay() []replay.Event {
	return s.replay.Events()
}

func correctPrefix(expected, input string) int {
	e := []rune(expected)
	n := 0
	for _, r := range input {
		if n >= len(e) || e[n] != r {
			break
		}
		n++
	}
	return n
}
