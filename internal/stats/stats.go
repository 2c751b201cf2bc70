// Package stats contains race history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/race"
)

const sparkChars = " .:-=+*#%@"

// RaceMetrics computes WPM, CPM, and accuracy (0..1) for a finished race.
func RaceMetrics(chars, errors int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(chars) / 5.0) / minutes
	cpm = float64(chars) / minutes
	den := float64(chars + errors)
	if den > 0 {
		accuracy = float64(chars) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Tail keeps at most width trailing values so a sparkline fits a terminal row.
func Tail(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	return values[len(values)-width:]
}

// RenderSummary prints a summary for races.
func RenderSummary(w io.Writer, races []model.RaceRecord) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(w, "No races found.")
		return err
	}
	var totalWPM, totalCPM, totalAcc float64
	bestWPM := 0.0
	var totalMs int64
	for _, r := range races {
		wpm, cpm, acc := RaceMetrics(r.Chars, r.Errors, r.DurationMs)
		totalWPM += wpm
		totalCPM += cpm
		totalAcc += acc
		bestWPM = math.Max(bestWPM, wpm)
		totalMs += r.DurationMs
	}
	count := float64(len(races))
	lines := []string{
		"Summary",
		fmt.Sprintf("Races: %d", len(races)),
		fmt.Sprintf("Time raced: %s", race.FormatTimer(float64(totalMs)/1000.0)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg CPM: %.2f", totalCPM/count),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints moving-average WPM and accuracy sparklines sized to width.
func RenderCurves(w io.Writer, races []model.RaceRecord, window, width int) error {
	if len(races) == 0 {
		return nil
	}
	wpms := make([]float64, len(races))
	accs := make([]float64, len(races))
	for i, r := range races {
		wpm, _, acc := RaceMetrics(r.Chars, r.Errors, r.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	const label = "Accuracy "
	span := width - len(label)
	rows := [][2]string{
		{"WPM      ", Sparkline(Tail(MovingAverage(wpms, window), span))},
		{label, Sparkline(Tail(MovingAverage(accs, window), span))},
	}
	if _, err := fmt.Fprintf(w, "Curves (window %d)\n", max(window, 1)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRaceTable prints the most recent races, newest last.
func RenderRaceTable(w io.Writer, races []model.RaceRecord) error {
	if len(races) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recent Races"); err != nil {
		return err
	}
	headers := []string{"Ended", "Seed", "Passages", "Time", "WPM", "Accuracy"}
	rows := make([][]string, 0, len(races))
	for _, r := range races {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.Seed,
			fmt.Sprintf("%d", r.Passages),
			race.FormatTimer(float64(r.DurationMs) / 1000.0),
			fmt.Sprintf("%.1f", r.WPM),
			fmt.Sprintf("%.2f%%", r.Accuracy),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
