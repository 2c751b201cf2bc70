package passage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed default_passages.json
var defaultPassages []byte

type meditationFile struct {
	Meditations []struct {
		Text string `json:"expanded_meditation" yaml:"expanded_meditation"`
	} `json:"expanded_meditations" yaml:"expanded_meditations"`
}

// Default returns the built-in passage pool.
func Default() []Passage {
	out, err := decodeJSON(defaultPassages)
	if err != nil {
		return nil
	}
	return out
}

// LoadFile reads passages from a JSON or YAML file. Two shapes are accepted:
// a list of {display_text, match_text} records, or an object with an
// expanded_meditations list whose entries carry expanded_meditation text.
func LoadFile(path string) ([]Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read passages: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]Passage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Passage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to decode passages: %w", err)
		}
		return normalize(list), nil
	}
	var file meditationFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, fmt.Errorf("failed to decode passages: %w", err)
	}
	return fromMeditations(file), nil
}

func decodeYAML(data []byte) ([]Passage, error) {
	var list []Passage
	if err := yaml.Unmarshal(data, &list); err == nil {
		return normalize(list), nil
	}
	var file meditationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode passages: %w", err)
	}
	return fromMeditations(file), nil
}

func fromMeditations(file meditationFile) []Passage {
	out := make([]Passage, 0, len(file.Meditations))
	for _, m := range file.Meditations {
		text := Fold(m.Text)
		if text == "" {
			continue
		}
		out = append(out, New(text))
	}
	return out
}

// Fold collapses every whitespace run to a single space and trims the ends,
// so file passages never ask for a newline or tab.
func Fold(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalize(list []Passage) []Passage {
	out := make([]Passage, 0, len(list))
	for _, p := range list {
		p.DisplayText = Fold(p.DisplayText)
		p.MatchText = Fold(p.MatchText)
		if p.MatchText == "" {
			p.MatchText = p.DisplayText
		}
		if p.DisplayText == "" {
			p.DisplayText = p.MatchText
		}
		if p.MatchText == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FileProvider loads passages from Path on every call. Failures are logged
// and produce an empty pool.
type FileProvider struct {
	Path   string
	Logger zerolog.Logger
}

// Passages implements Provider.
func (p FileProvider) Passages() []Passage {
	list, err := LoadFile(p.Path)
	if err != nil {
		p.Logger.Warn().Err(err).Str("path", p.Path).Msg("passage file unavailable")
		return nil
	}
	if len(list) == 0 {
		p.Logger.Warn().Str("path", p.Path).Msg("passage file is empty")
	}
	return list
}
