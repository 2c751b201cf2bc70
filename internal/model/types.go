// Package model defines shared data structures.
package model

import "time"

// Config defines race settings resolved from flags and the config file.
type Config struct {
	Seed         string
	Passages     int
	PassagesFile string
	WordListPath string
	Words        int
	Ghost        bool
	Sampling     string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RaceRecord captures a finished race.
type RaceRecord struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Seed       string
	Passages   int
	Chars      int
	Errors     int
	DurationMs int64
	WPM        float64
	Accuracy   float64
}
