// Package clock provides monotonic instants and wall-clock timestamps.
package clock

import (
	"sync"
	"time"
)

// Instant is a point on a monotonic timeline.
type Instant interface {
	// Elapsed returns the seconds passed since the instant was taken.
	Elapsed() float64
}

// Clock produces monotonic instants and epoch milliseconds.
type Clock interface {
	Now() Instant
	EpochMillis() uint64
}

// Steady reads the process monotonic clock through time.Time.
type Steady struct {
	now func() time.Time
}

// NewSteady returns a Steady clock backed by time.Now.
func NewSteady() *Steady {
	return &Steady{now: time.Now}
}

// Now implements Clock.
func (c *Steady) Now() Instant {
	return steadyInstant{at: c.now(), now: c.now}
}

// EpochMillis implements Clock.
func (c *Steady) EpochMillis() uint64 {
	return epochMillis(c.now())
}

type steadyInstant struct {
	at  time.Time
	now func() time.Time
}

func (i steadyInstant) Elapsed() float64 {
	d := i.now().Sub(i.at)
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

// HighRes measures floating-point milliseconds since its origin, the way a
// browser performance timer does. Wall-clock time is origin epoch plus offset.
type HighRes struct {
	originMs float64
	sinceMs  func() float64
}

// NewHighRes returns a HighRes clock whose origin is the moment of the call.
func NewHighRes() *HighRes {
	origin := time.Now()
	return &HighRes{
		originMs: float64(origin.UnixMilli()),
		sinceMs: func() float64 {
			return float64(time.Since(origin)) / float64(time.Millisecond)
		},
	}
}

// NewHighResFunc builds a HighRes clock from an epoch origin and a
// milliseconds-since-origin source.
func NewHighResFunc(originEpochMs uint64, sinceMs func() float64) *HighRes {
	return &HighRes{originMs: float64(originEpochMs), sinceMs: sinceMs}
}

// Now implements Clock.
func (c *HighRes) Now() Instant {
	return millisInstant{ms: c.sinceMs(), now: c.sinceMs}
}

// EpochMillis implements Clock.
func (c *HighRes) EpochMillis() uint64 {
	ms := c.originMs + c.sinceMs()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}

type millisInstant struct {
	ms  float64
	now func() float64
}

func (i millisInstant) Elapsed() float64 {
	d := i.now() - i.ms
	if d < 0 {
		return 0
	}
	return d / 1000.0
}

// Manual is a Clock that only moves when told to. Use it in tests.
type Manual struct {
	mu      sync.Mutex
	epochMs uint64
	offset  time.Duration
}

// NewManual returns a Manual clock whose wall time starts at epochMs.
func NewManual(epochMs uint64) *Manual {
	return &Manual{epochMs: epochMs}
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.offset += d
	c.mu.Unlock()
}

// Now implements Clock.
func (c *Manual) Now() Instant {
	return millisInstant{ms: c.sinceMs(), now: c.sinceMs}
}

// EpochMillis implements Clock.
func (c *Manual) EpochMillis() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epochMs + uint64(c.offset.Milliseconds())
}

func (c *Manual) sinceMs() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.offset) / float64(time.Millisecond)
}

func epochMillis(t time.Time) uint64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
