package passage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestHashMatchesFNV1a(t *testing.T) {
	if got := Hash(""); got != 0xcbf29ce484222325 {
		t.Fatalf("empty input should hash to the offset basis, got %#x", got)
	}
	if got := Hash("a"); got != 0xaf63dc4c8601ec8c {
		t.Fatalf("unexpected hash for %q: %#x", "a", got)
	}
	if got := Hash("default-seed"); got != 0xd5f30a3fe6d1be68 {
		t.Fatalf("unexpected hash for %q: %#x", "default-seed", got)
	}
}

func TestStartIndexGuardsZeroCount(t *testing.T) {
	if got := StartIndex("default-seed", 0); got != 0 {
		t.Fatalf("expected 0 for empty pool, got %d", got)
	}
	want := int(Hash("default-seed") % 7)
	for i := 0; i < 3; i++ {
		if got := StartIndex("default-seed", 7); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestSelectRotatesAndLimits(t *testing.T) {
	pool := []Passage{New("a"), New("b"), New("c")}
	start := StartIndex("seed", len(pool))
	got := Select(pool, "seed", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(got))
	}
	if got[0] != pool[start] || got[1] != pool[(start+1)%3] {
		t.Fatalf("unexpected selection %+v (start %d)", got, start)
	}
	if all := Select(pool, "seed", 0); len(all) != 3 {
		t.Fatalf("limit 0 should keep the whole pool, got %d", len(all))
	}
	if empty := Select(nil, "seed", 3); len(empty) != 0 {
		t.Fatalf("expected empty selection, got %d", len(empty))
	}
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"med.json":  `{"expanded_meditations":[{"expanded_meditation":"one"},{"expanded_meditation":""},{"expanded_meditation":"two"}]}`,
		"list.json": `[{"display_text":"One","match_text":"one"},{"display_text":"two"}]`,
		"list.yaml": "- display_text: one\n- display_text: Two\n  match_text: two\n",
		"med.yml":   "expanded_meditations:\n  - expanded_meditation: one\n  - expanded_meditation: two\n",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(got) != 2 {
			t.Fatalf("%s: expected 2 passages, got %+v", name, got)
		}
		if got[0].MatchText != "one" || got[1].MatchText != "two" {
			t.Fatalf("%s: unexpected match text %+v", name, got)
		}
	}
}

func TestFileProviderDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, path := range []string{corrupt, filepath.Join(dir, "missing.json")} {
		p := FileProvider{Path: path, Logger: zerolog.Nop()}
		if got := p.Passages(); len(got) != 0 {
			t.Fatalf("expected empty pool for %s, got %d", path, len(got))
		}
	}
}

func TestDefaultPassages(t *testing.T) {
	got := Default()
	if len(got) == 0 {
		t.Fatalf("expected embedded passages")
	}
	for _, p := range got {
		if p.DisplayText != p.MatchText {
			t.Fatalf("embedded passages should have identical display and match text")
		}
	}
}

func TestWordListProviderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n\ngamma\ndelta\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p := WordListProvider{Path: path, Seed: "s", Count: 3, Words: 4, Logger: zerolog.Nop()}
	first := p.Passages()
	second := p.Passages()
	if len(first) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed should generate the same passages")
	}
	missing := WordListProvider{Path: filepath.Join(dir, "none.txt"), Count: 1, Words: 1, Logger: zerolog.Nop()}
	if got := missing.Passages(); len(got) != 0 {
		t.Fatalf("expected empty pool for missing word list")
	}
}

func TestLoadFileFoldsWhitespace(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"block.yaml": "- match_text: |\n    go\n",
		"tabs.json":  `[{"display_text":"  a\tb\n\nc ","match_text":"a\tb\n\nc"}]`,
		"med.json":   `{"expanded_meditations":[{"expanded_meditation":"x\ny"},{"expanded_meditation":" \n "}]}`,
	}
	want := map[string]string{"block.yaml": "go", "tabs.json": "a b c", "med.json": "x y"}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(got) != 1 || got[0].MatchText != want[name] || got[0].DisplayText != want[name] {
			t.Fatalf("%s: expected folded %q, got %+v", name, want[name], got)
		}
	}
}
