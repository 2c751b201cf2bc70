// Package replay records keystroke events and plays them back against time.
package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Sentinel marks a completed passage. It is the ASCII end-of-text control
// character, which no key produces.
const Sentinel rune = '\x03'

// StoreKey is the blob store key the replay is persisted under.
const StoreKey = "tuiracer_replay"

// Edit tags what an event did to the buffer. The zero value is an insert.
type Edit string

const (
	// EditInsert records the buffer's last character after an insertion.
	EditInsert Edit = ""
	// EditDelete records a backspace.
	EditDelete Edit = "delete"
)

// Event is one recorded keystroke.
type Event struct {
	TimestampMs  uint64
	PassageIndex int
	Character    rune
	Edit         Edit
}

// IsCompletion reports whether the event marks a finished passage.
func (e Event) IsCompletion() bool {
	return e.Character == Sentinel && e.Edit == EditInsert
}

type eventJSON struct {
	TimestampMs  uint64 `json:"timestamp_ms"`
	PassageIndex int    `json:"passage_index"`
	Character    string `json:"character"`
	Edit         Edit   `json:"edit,omitempty"`
}

// MarshalJSON encodes the character as a one-rune string.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		TimestampMs:  e.TimestampMs,
		PassageIndex: e.PassageIndex,
		Character:    string(e.Character),
		Edit:         e.Edit,
	})
}

// UnmarshalJSON rejects characters that are not exactly one rune.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if utf8.RuneCountInString(raw.Character) != 1 {
		return fmt.Errorf("character %q is not a single rune", raw.Character)
	}
	if raw.PassageIndex < 0 {
		return fmt.Errorf("negative passage index %d", raw.PassageIndex)
	}
	switch raw.Edit {
	case EditInsert, EditDelete:
	default:
		return fmt.Errorf("unknown edit %q", raw.Edit)
	}
	r, _ := utf8.DecodeRuneInString(raw.Character)
	*e = Event{
		TimestampMs:  raw.TimestampMs,
		PassageIndex: raw.PassageIndex,
		Character:    r,
		Edit:         raw.Edit,
	}
	return nil
}

// Log is an append-only sequence of events.
type Log struct {
	events []Event
}

// Record appends e.
func (l *Log) Record(e Event) {
	l.events = append(l.events, e)
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	return len(l.events)
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Reset discards every event.
func (l *Log) Reset() {
	l.events = nil
}

// Marshal encodes events as a JSON array of records.
func Marshal(events []Event) ([]byte, error) {
	if events == nil {
		events = []Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("failed to encode replay: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON array of records.
func Unmarshal(data []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return events, nil
}

// BlobStore is a byte store addressed by key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// Save persists events under StoreKey.
func Save(ctx context.Context, store BlobStore, events []Event) error {
	data, err := Marshal(events)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, StoreKey, data); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	return nil
}

// Load reads the persisted replay. Missing, unreadable or malformed data
// all yield an empty log.
func Load(ctx context.Context, store BlobStore, logger zerolog.Logger) []Event {
	data, ok, err := store.Get(ctx, StoreKey)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read replay")
		return nil
	}
	if !ok {
		return nil
	}
	events, err := Unmarshal(data)
	if err != nil {
		logger.Warn().Err(err).Msg("discarding malformed replay")
		return nil
	}
	return events
}

// Rebase shifts events so the first one lands at startMs, keeping the gaps
// between them.
func Rebase(events []Event, startMs uint64) []Event {
	if len(events) == 0 {
		return nil
	}
	origin := events[0].TimestampMs
	out := make([]Event, len(events))
	for i, e := range events {
		var offset uint64
		if e.TimestampMs > origin {
			offset = e.TimestampMs - origin
		}
		e.TimestampMs = startMs + offset
		out[i] = e
	}
	return out
}
