package passage

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Generator builds passages from a word list with a seeded rng, so the same
// seed always yields the same text.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded from the FNV-1a hash of seed.
func NewGenerator(seed string) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(int64(Hash(seed))))}
}

// Generate selects count words uniformly and applies caps/punctuation rules.
func (g *Generator) Generate(words []string, count int, capsPct, punctPct float64, punctSet []rune) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}

// WordListProvider generates Count passages of Words words each from the
// word list at Path.
type WordListProvider struct {
	Path     string
	Seed     string
	Count    int
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet string
	Logger   zerolog.Logger
}

// Passages implements Provider.
func (p WordListProvider) Passages() []Passage {
	words, err := LoadWords(p.Path)
	if err != nil {
		p.Logger.Warn().Err(err).Str("path", p.Path).Msg("word list unavailable")
		return nil
	}
	gen := NewGenerator(p.Seed)
	punct := []rune(p.PunctSet)
	out := make([]Passage, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		text := strings.Join(gen.Generate(words, p.Words, p.CapsPct, p.PunctPct, punct), " ")
		if text == "" {
			continue
		}
		out = append(out, New(text))
	}
	return out
}
