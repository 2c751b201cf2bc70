package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiracer/internal/model"
)

type fakeLister struct {
	races []model.RaceRecord
	err   error
	calls int
}

func (f *fakeLister) ListRaces(_ context.Context, _ model.StatsConfig) ([]model.RaceRecord, error) {
	f.calls++
	return f.races, f.err
}

func sampleRaces(n int) []model.RaceRecord {
	races := make([]model.RaceRecord, 0, n)
	for i := 0; i < n; i++ {
		end := time.Unix(int64(i)*60, 0)
		races = append(races, model.RaceRecord{
			ID:         int64(i + 1),
			EndedAt:    end,
			Seed:       "default-seed",
			Passages:   1,
			Chars:      100,
			Errors:     i,
			DurationMs: 60000,
			WPM:        20,
			Accuracy:   99,
		})
	}
	return races
}

func TestViewShowsReport(t *testing.T) {
	lister := &fakeLister{races: sampleRaces(3)}
	m := NewModel(context.Background(), lister, model.StatsConfig{CurveWindow: 2})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	view := m.View()
	for _, want := range []string{"tuiracer stats", "window=2", "Races: 3", "Avg WPM: 20.00", "Recent Races"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestCurveWindowKeysReload(t *testing.T) {
	lister := &fakeLister{races: sampleRaces(2)}
	m := NewModel(context.Background(), lister, model.StatsConfig{CurveWindow: 3})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.CurveWindow != 5 {
		t.Fatalf("expected window 5, got %d", m.cfg.CurveWindow)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if m.cfg.CurveWindow != 1 {
		t.Fatalf("expected window 1, got %d", m.cfg.CurveWindow)
	}
	if lister.calls != 4 {
		t.Fatalf("expected a reload per change, got %d calls", lister.calls)
	}
}

func TestLoadErrorShownInFooter(t *testing.T) {
	lister := &fakeLister{err: errors.New("db locked")}
	m := NewModel(context.Background(), lister, model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	view := m.View()
	if !strings.Contains(view, "Failed to load stats.") || !strings.Contains(view, "db locked") {
		t.Fatalf("expected error in view:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(context.Background(), &fakeLister{}, model.StatsConfig{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("ab\ncdef\ngh", 3, 2)
	if got != "ab \ncdef" {
		t.Fatalf("unexpected fit %q", got)
	}
	if truncateLine("abcdefgh", 6) != "abc..." {
		t.Fatalf("unexpected truncate %q", truncateLine("abcdefgh", 6))
	}
}
