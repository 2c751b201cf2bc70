package app

import (
	"github.com/verte-zerg/tuiracer/internal/passage"
	"github.com/verte-zerg/tuiracer/internal/race"
)

// Frame is the read-only snapshot a renderer draws from.
type Frame struct {
	Elapsed float64
	Timer   string
	Status  race.Status
	Mode    Mode

	Seed       string
	Passage    passage.Passage
	HasPassage bool
	Index      int
	Total      int
	Input      string
	Cursor     int
	Correct    int
	Errors     int

	Metrics race.Metrics
	Ghost   GhostFrame

	LastKey  string
	MostUsed []string
}

// GhostFrame describes the replayed opponent.
type GhostFrame struct {
	Enabled  bool
	Running  bool
	Index    int
	Progress float64
	WPM      float64
	Emitted  int
	Events   int
}

func (a *App) frame() Frame {
	elapsed := a.session.Elapsed()
	f := Frame{
		Elapsed: elapsed,
		Timer:   race.FormatTimer(elapsed),
		Status:  a.session.Status(),
		Mode:    a.mode,
		Seed:    a.session.Seed(),
		Index:   a.session.Index(),
		Total:   len(a.session.Passages()),
		Input:   a.buf.Text(),
		Cursor:  a.buf.Cursor(),
		Errors:  a.session.Errors(),
		Metrics: a.metrics,
		LastKey: a.footer.LastKey(),
	}
	f.Metrics.WPMHistory = append([]float64(nil), a.metrics.WPMHistory...)
	f.Passage, f.HasPassage = a.session.Current()
	f.Correct = a.session.Progress().PassageTyped
	if f.Status == race.Finished && f.Total > 0 {
		f.Metrics.Progress = 100
	}
	f.MostUsed = a.keyboard.MostUsed(5)

	emitted, total := a.player.Position()
	f.Ghost = GhostFrame{
		Enabled: a.ghostOn || a.mode == ModeReplay,
		Running: a.player.Running(),
		Emitted: emitted,
		Events:  total,
	}
	if a.ghostOn {
		f.Ghost.Index = a.ghost.Index()
		f.Ghost.Progress = a.ghost.Progress()
		if now := a.clk.EpochMillis(); a.player.StartMs() > 0 && now > a.player.StartMs() {
			f.Ghost.WPM = a.ghost.WPM(now - a.player.StartMs())
		}
	}
	return f
}
