// Package passage defines race passages, their providers and seed-based selection.
package passage

import (
	"hash/fnv"
	"unicode/utf8"
)

// Passage is a block of text the player reproduces verbatim.
type Passage struct {
	DisplayText string `json:"display_text" yaml:"display_text"`
	MatchText   string `json:"match_text" yaml:"match_text"`
}

// New returns a Passage whose display and match text are the same.
func New(text string) Passage {
	return Passage{DisplayText: text, MatchText: text}
}

// Len returns the match text length in runes.
func (p Passage) Len() int {
	return utf8.RuneCountInString(p.MatchText)
}

// Provider supplies the ordered passage pool. Implementations never fail:
// missing or corrupt sources yield an empty slice.
type Provider interface {
	Passages() []Passage
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() []Passage

// Passages implements Provider.
func (f ProviderFunc) Passages() []Passage {
	return f()
}

// Static is a Provider over a fixed slice.
type Static []Passage

// Passages implements Provider.
func (s Static) Passages() []Passage {
	out := make([]Passage, len(s))
	copy(out, s)
	return out
}

// Hash returns the 64-bit FNV-1a hash of seed.
func Hash(seed string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return h.Sum64()
}

// StartIndex maps seed onto [0, count). It returns 0 when count is not positive.
func StartIndex(seed string, count int) int {
	if count < 1 {
		count = 1
	}
	return int(Hash(seed) % uint64(count))
}

// Select picks the race passages for seed: the pool rotated to begin at
// StartIndex, truncated to limit entries (limit <= 0 keeps all).
func Select(pool []Passage, seed string, limit int) []Passage {
	if len(pool) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(pool) {
		limit = len(pool)
	}
	start := StartIndex(seed, len(pool))
	out := make([]Passage, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, pool[(start+i)%len(pool)])
	}
	return out
}
