package input

import (
	"fmt"
	"strings"
)

// Sampling decides which queued events a frame processes.
type Sampling int

const (
	// SampleLast keeps only the most recent event of the frame.
	SampleLast Sampling = iota
	// SampleAll drains every queued event in arrival order.
	SampleAll
)

// ParseSampling parses "last" or "drain".
func ParseSampling(s string) (Sampling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return SampleLast, nil
	case "drain", "all":
		return SampleAll, nil
	default:
		return SampleLast, fmt.Errorf("unknown input sampling %q (want last or drain)", s)
	}
}

func (s Sampling) String() string {
	if s == SampleAll {
		return "drain"
	}
	return "last"
}

// Queue buffers events between frames.
type Queue struct {
	events []KeyEvent
}

// Push appends an event.
func (q *Queue) Push(ev KeyEvent) {
	q.events = append(q.events, ev)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain empties the queue and returns the events the sampling keeps.
func (q *Queue) Drain(s Sampling) []KeyEvent {
	if len(q.events) == 0 {
		return nil
	}
	pending := q.events
	q.events = nil
	if s == SampleLast {
		return pending[len(pending)-1:]
	}
	return pending
}
