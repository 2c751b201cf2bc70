// Package app runs the per-frame update loop that ties input, the typing
// session and replay playback together.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuiracer/internal/clock"
	"github.com/verte-zerg/tuiracer/internal/input"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/passage"
	"github.com/verte-zerg/tuiracer/internal/race"
	"github.com/verte-zerg/tuiracer/internal/replay"
	"github.com/verte-zerg/tuiracer/internal/typing"
)

// SeedKey is the blob store key holding the seed of the saved replay.
const SeedKey = "tuiracer_replay_seed"

// Mode selects what drives the session.
type Mode int

const (
	// ModeRace takes typing from the player, optionally against a ghost.
	ModeRace Mode = iota
	// ModeReplay feeds the saved replay into the session as input.
	ModeReplay
)

// RaceRecorder stores finished races.
type RaceRecorder interface {
	InsertRace(ctx context.Context, rec model.RaceRecord) (int64, error)
}

// Options configures an App.
type Options struct {
	Clock    clock.Clock
	Provider passage.Provider
	Limit    int
	Seed     string
	Store    replay.BlobStore
	Races    RaceRecorder
	Logger   zerolog.Logger
	Sampling input.Sampling
	Ghost    bool
	Mode     Mode
}

type action int

const (
	actionNone action = iota
	actionStart
	actionReset
)

// App owns every piece of mutable race state. It is driven from a single
// goroutine: Enqueue between frames, Tick once per frame.
type App struct {
	clk      clock.Clock
	provider passage.Provider
	store    replay.BlobStore
	races    RaceRecorder
	logger   zerolog.Logger
	sampling input.Sampling
	mode     Mode
	limit    int
	seed     string
	ghostOn  bool

	buf      *typing.Buffer
	session  *race.Session
	metrics  race.Metrics
	player   *replay.Player
	ghost    *Ghost
	keyboard *Keyboard
	footer   *Footer
	typist   *typist

	router      *input.Router
	ghostRouter *input.Router
	queue       input.Queue

	pending   action
	persisted bool
}

// New builds an App in the NotStarted state.
func New(opts Options) *App {
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewSteady()
	}
	provider := opts.Provider
	if provider == nil {
		provider = passage.Static(passage.Default())
	}
	a := &App{
		clk:      clk,
		provider: provider,
		store:    opts.Store,
		races:    opts.Races,
		logger:   opts.Logger,
		sampling: opts.Sampling,
		mode:     opts.Mode,
		limit:    opts.Limit,
		seed:     opts.Seed,
		ghostOn:  opts.Ghost && opts.Mode == ModeRace,
		buf:      &typing.Buffer{},
		player:   replay.NewPlayer(),
		ghost:    &Ghost{},
		keyboard: NewKeyboard(clk),
		footer:   &Footer{},
	}
	a.session = race.New(clk, a.buf, nil, opts.Limit)
	a.session.SetGhost(a.ghostOn)
	a.typist = &typist{buf: a.buf, session: a.session, live: opts.Mode == ModeRace}
	a.router = input.NewRouter(a.buf,
		a.keyboard,
		a.footer,
		input.HandlerFunc(a.control),
		a.typist,
	)
	a.ghostRouter = input.NewRouter(nil, a.ghost)
	return a
}

// Start begins a race for seed. In replay mode the seed of the saved replay
// wins when one was stored.
func (a *App) Start(ctx context.Context, seed string) {
	if seed != "" {
		a.seed = seed
	}
	a.player.Stop()
	a.metrics.Reset()
	a.persisted = false

	var recorded []replay.Event
	var recordedSeed string
	if a.store != nil && (a.mode == ModeReplay || a.ghostOn) {
		recorded = replay.Load(ctx, a.store, a.logger)
		recordedSeed = a.savedSeed(ctx)
		if a.mode == ModeReplay && recordedSeed != "" {
			a.seed = recordedSeed
		}
	}

	pool := a.provider.Passages()
	a.session.SetPool(pool)
	a.session.Start(a.seed)
	a.logger.Info().
		Str("seed", a.seed).
		Int("passages", len(a.session.Passages())).
		Str("mode", a.modeName()).
		Msg("race started")

	// The ghost walks the passages of the run it was recorded on.
	ghostPassages := a.session.Passages()
	if a.ghostOn && recordedSeed != "" && recordedSeed != a.seed {
		ghostPassages = passage.Select(pool, recordedSeed, a.limit)
	}
	a.ghost.Reset(ghostPassages)
	if a.mode == ModeReplay || a.ghostOn {
		if len(recorded) == 0 {
			a.logger.Warn().Msg("no saved replay to play back")
			return
		}
		startMs := a.clk.EpochMillis()
		a.player.Start(replay.Rebase(recorded, startMs), startMs)
	}
}

// Reset stops playback and returns the session to NotStarted.
func (a *App) Reset() {
	a.player.Stop()
	a.session.Reset()
	a.metrics.Reset()
	a.ghost.Reset(nil)
	a.persisted = false
	a.logger.Debug().Msg("race reset")
}

// SetGhost turns ghost playback on or off for the next race. Turning it off
// stops a running ghost.
func (a *App) SetGhost(on bool) {
	if a.mode != ModeRace {
		return
	}
	a.ghostOn = on
	a.session.SetGhost(on)
	if !on {
		a.player.Stop()
	}
}

// Ghost reports whether ghost playback is enabled.
func (a *App) Ghost() bool { return a.ghostOn }

// Enqueue buffers a live key event for the next Tick.
func (a *App) Enqueue(ev input.KeyEvent) {
	a.queue.Push(ev)
}

// Keyboard exposes the key overlay for rendering.
func (a *App) Keyboard() *Keyboard { return a.keyboard }

// Tick processes queued input and due replay events, refreshes the metrics
// and returns what the renderer needs for this frame.
func (a *App) Tick(ctx context.Context) Frame {
	for _, ev := range a.queue.Drain(a.sampling) {
		a.router.Dispatch(ev)
	}
	switch a.pending {
	case actionStart:
		a.Start(ctx, "")
	case actionReset:
		a.Reset()
	}
	a.pending = actionNone

	if ev, ok := a.player.Tick(a.clk.EpochMillis()); ok {
		if a.mode == ModeReplay {
			a.typist.replaying = true
			a.router.Dispatch(ev)
			a.typist.replaying = false
		} else {
			a.ghostRouter.Dispatch(ev)
		}
	}

	a.session.Tick()
	status := a.session.Status()
	if status == race.Running || (status == race.Finished && !a.persisted) {
		a.metrics.Update(a.session.Progress())
	}
	if status == race.Finished && !a.persisted {
		a.persisted = true
		a.persist(ctx)
	}
	return a.frame()
}

func (a *App) control(ev input.KeyEvent) bool {
	if ev.Kind != input.Press {
		return false
	}
	switch ev.Key {
	case input.KeyEnter:
		if a.session.Status() == race.Running {
			return false
		}
		a.pending = actionStart
		return true
	case input.KeyEscape:
		a.pending = actionReset
		return true
	}
	return false
}

func (a *App) persist(ctx context.Context) {
	if a.mode != ModeRace || len(a.session.Passages()) == 0 {
		return
	}
	if a.store != nil {
		if err := replay.Save(ctx, a.store, a.session.Replay()); err != nil {
			a.logger.Warn().Err(err).Msg("failed to save replay")
		} else if err := a.store.Set(ctx, SeedKey, []byte(a.session.Seed())); err != nil {
			a.logger.Warn().Err(err).Msg("failed to save replay seed")
		}
	}
	progress := a.session.Progress()
	started := time.UnixMilli(int64(a.session.StartedAtMs()))
	duration := time.Duration(a.session.Elapsed() * float64(time.Second))
	rec := model.RaceRecord{
		StartedAt:  started,
		EndedAt:    started.Add(duration),
		Seed:       a.session.Seed(),
		Passages:   len(a.session.Passages()),
		Chars:      progress.Typed(),
		Errors:     progress.Errors,
		DurationMs: duration.Milliseconds(),
		WPM:        a.metrics.WPM,
		Accuracy:   a.metrics.Accuracy,
	}
	a.logger.Info().
		Str("seed", rec.Seed).
		Float64("wpm", rec.WPM).
		Float64("accuracy", rec.Accuracy).
		Int("errors", rec.Errors).
		Msg("race finished")
	if a.races == nil {
		return
	}
	if _, err := a.races.InsertRace(ctx, rec); err != nil {
		a.logger.Warn().Err(err).Msg("failed to record race")
	}
}

func (a *App) savedSeed(ctx context.Context) string {
	data, ok, err := a.store.Get(ctx, SeedKey)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to read replay seed")
		return ""
	}
	if !ok {
		return ""
	}
	return string(data)
}

func (a *App) modeName() string {
	if a.mode == ModeReplay {
		return "replay"
	}
	if a.ghostOn {
		return "ghost"
	}
	return "race"
}

// typist applies text edits to the buffer and scores them.
type typist struct {
	buf       *typing.Buffer
	session   *race.Session
	live      bool
	replaying bool
}

func (t *typist) HandleKey(ev input.KeyEvent) bool {
	if ev.Kind != input.Press || (!t.live && !t.replaying) {
		return false
	}
	if t.session.Status() != race.Running {
		return false
	}
	switch {
	case ev.Key == input.KeyBackspace:
		if t.buf.Backspace() {
			t.session.Score(typing.EditDelete)
		}
		return true
	case ev.Printable():
		t.buf.InsertChar(ev.Rune)
		t.session.Score(typing.EditInsert)
		return true
	case ev.Key == input.KeySpace:
		t.buf.InsertChar(' ')
		t.session.Score(typing.EditInsert)
		return true
	case ev.Key == input.KeyEnter:
		t.buf.InsertChar('\n')
		t.session.Score(typing.EditInsert)
		return true
	case ev.Key == input.KeyTab:
		t.buf.InsertChar('\t')
		t.session.Score(typing.EditInsert)
		return true
	case ev.Key == input.KeyPassageEnd && t.replaying:
		// The completing keystroke is only logged as the sentinel.
		if current, ok := t.session.Current(); ok {
			t.buf.Set(current.MatchText)
			t.session.Score(typing.EditInsert)
		}
		return true
	}
	return false
}

// Footer remembers the last key seen for the status line. It never claims.
type Footer struct {
	last string
}

// HandleKey implements input.Handler.
func (f *Footer) HandleKey(ev input.KeyEvent) bool {
	if ev.Kind == input.Press && ev.Key != "" {
		f.last = ev.Key
	}
	return false
}

// LastKey returns the most recent key name.
func (f *Footer) LastKey() string { return f.last }
