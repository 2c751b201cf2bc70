package race

import (
	"fmt"
	"math"
)

// Progress is a snapshot of the counters metrics are derived from.
type Progress struct {
	Elapsed        float64
	Errors         int
	CompletedChars int
	PassageChars   int
	PassageTyped   int
}

// Typed returns the correct characters typed over the whole race.
func (p Progress) Typed() int {
	return p.CompletedChars + p.PassageTyped
}

// Metrics holds derived race figures. A figure whose denominator is zero
// keeps its previous value.
type Metrics struct {
	WPM        float64
	Progress   float64
	Accuracy   float64
	WPMHistory []float64
}

// Update recomputes the metrics from p.
func (m *Metrics) Update(p Progress) {
	typed := float64(p.Typed())
	minutes := p.Elapsed / 60.0
	if minutes > 0 {
		m.WPM = (typed / 5.0) / minutes
	}
	if p.PassageChars > 0 {
		m.Progress = 100.0 * float64(p.PassageTyped) / float64(p.PassageChars)
	}
	if den := typed + float64(p.Errors); den > 0 {
		m.Accuracy = 100.0 * typed / den
	}
	if p.Elapsed > 0 && int(math.Floor(p.Elapsed)) > len(m.WPMHistory) {
		m.WPMHistory = append(m.WPMHistory, m.WPM)
	}
}

// Reset clears every figure.
func (m *Metrics) Reset() {
	*m = Metrics{}
}

// FormatTimer renders seconds as MM:SS.t.
func FormatTimer(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	tenths := int(seconds * 10)
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
