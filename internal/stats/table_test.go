package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Seed", "Time", "WPM"}
	rows := [][]string{
		{"a", "01:02.5", "62.0"},
		{"default", "00:48.1", "7.5"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Seed       Time  WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a       01:02.5 62.0" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "default 00:48.1  7.5" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]string{"Seed", "N"}, [][]string{{"日本", "1"}}, nil)
	if lines[1] != "日本 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
}
