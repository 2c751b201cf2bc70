package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/tuiracer/internal/model"
)

func TestRaceMetrics(t *testing.T) {
	wpm, cpm, acc := RaceMetrics(100, 25, 60_000)
	if math.Abs(wpm-20) > 1e-9 || math.Abs(cpm-100) > 1e-9 || math.Abs(acc-0.8) > 1e-9 {
		t.Fatalf("unexpected metrics %f %f %f", wpm, cpm, acc)
	}
	if wpm, cpm, acc := RaceMetrics(10, 0, 0); wpm != 0 || cpm != 0 || acc != 0 {
		t.Fatalf("zero duration must yield zeros")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: got %f want %f", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("flat series should use the middle glyph, got %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestTail(t *testing.T) {
	if got := Tail([]float64{1, 2, 3}, 2); len(got) != 2 || got[0] != 2 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := Tail([]float64{1, 2}, 0); len(got) != 2 {
		t.Fatalf("non-positive width keeps all values")
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No races found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderCurvesFitsWidth(t *testing.T) {
	races := make([]model.RaceRecord, 50)
	for i := range races {
		races[i] = model.RaceRecord{Chars: 10 * (i + 1), DurationMs: 60_000}
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, races, 3, 30); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if len(line) > 30 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}
