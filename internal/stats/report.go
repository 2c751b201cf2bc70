package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/tuiracer/internal/model"
)

// RaceLister lists stored races.
type RaceLister interface {
	ListRaces(ctx context.Context, cfg model.StatsConfig) ([]model.RaceRecord, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Races  []model.RaceRecord
	Window []model.RaceRecord
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st RaceLister, cfg model.StatsConfig) (Report, error) {
	races, err := st.ListRaces(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(races) > cfg.Last {
		races = races[len(races)-cfg.Last:]
	}
	return Report{
		Races:  races,
		Window: lastRaces(races, cfg.CurveWindow),
	}, nil
}

// Render writes the summary, curves, and recent-race table at the given width.
func (r Report) Render(w io.Writer, cfg model.StatsConfig, width int) error {
	if err := RenderSummary(w, r.Races); err != nil {
		return err
	}
	if err := RenderCurves(w, r.Races, cfg.CurveWindow, width); err != nil {
		return err
	}
	return RenderRaceTable(w, r.Window)
}

func lastRaces(races []model.RaceRecord, window int) []model.RaceRecord {
	if window <= 0 || len(races) <= window {
		return races
	}
	return races[len(races)-window:]
}
