// Package tui provides the Bubble Tea racing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuiracer/internal/app"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/race"
	"github.com/verte-zerg/tuiracer/internal/stats"
)

const (
	frameInterval = 16 * time.Millisecond
	roadLabel     = "Ghost "
	sparkWidth    = 24
)

type tickMsg time.Time

// Model implements the Bubble Tea racing UI. All race state lives in the
// app; the model only forwards keys, ticks frames and draws the last Frame.
type Model struct {
	ctx    context.Context
	app    *app.App
	races  stats.RaceLister
	logger zerolog.Logger
	keys   KeyMap

	frame      app.Frame
	lastStatus race.Status

	bar          progress.Model
	ghostBar     progress.Model
	showKeyboard bool

	width  int
	height int

	lastWPM float64
	lastAcc float64
	bestWPM float64
	hasLast bool
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	overflowStyle    = incorrectStyle.Strikethrough(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	keyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	litKeyStyle      = keyStyle.Background(lipgloss.Color("#64B4FF")).Foreground(lipgloss.Color("#000000"))
)

// NewModel constructs the racing TUI around a. races may be nil.
func NewModel(ctx context.Context, a *app.App, races stats.RaceLister, logger zerolog.Logger) *Model {
	m := &Model{
		ctx:          ctx,
		app:          a,
		races:        races,
		logger:       logger,
		keys:         DefaultKeyMap,
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		ghostBar:     progress.New(progress.WithSolidFill("#8C8C8C"), progress.WithoutPercentage()),
		showKeyboard: true,
	}
	m.loadFooterStats()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := max(1, m.contentWidth()-len(roadLabel))
		m.bar.Width = barWidth
		m.ghostBar.Width = barWidth
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Ghost):
			m.app.SetGhost(!m.app.Ghost())
			return m, nil
		case key.Matches(msg, m.keys.Keyboard):
			m.showKeyboard = !m.showKeyboard
			return m, nil
		}
		for _, ev := range decodeKey(msg) {
			m.app.Enqueue(ev)
		}
		return m, nil
	case tickMsg:
		m.frame = m.app.Tick(m.ctx)
		if m.frame.Status == race.Finished && m.lastStatus != race.Finished {
			m.loadFooterStats()
		}
		m.lastStatus = m.frame.Status
		return m, tick()
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	sections := []string{m.renderHeader(), "", m.renderRoad(), ""}
	sections = append(sections, m.renderPassage(width)...)
	if m.showKeyboard {
		sections = append(sections, "", m.renderKeyboard())
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderHeader() string {
	f := m.frame
	segments := []string{"tuiracer", f.Timer}
	if f.Seed != "" {
		segments = append(segments, fmt.Sprintf("seed %q", f.Seed))
	}
	if f.Total > 0 {
		segments = append(segments, fmt.Sprintf("passage %d/%d", min(f.Index+1, f.Total), f.Total))
	}
	switch {
	case f.Mode == app.ModeReplay:
		segments = append(segments, "replay")
	case m.app.Ghost():
		segments = append(segments, "ghost on")
	}
	return headerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderRoad() string {
	lines := []string{"You   " + m.bar.ViewAs(m.frame.Metrics.Progress/100)}
	if m.frame.Ghost.Enabled && m.frame.Mode == app.ModeRace {
		lines = append(lines, roadLabel+m.ghostBar.ViewAs(m.frame.Ghost.Progress/100))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPassage(width int) []string {
	f := m.frame
	switch {
	case f.HasPassage:
		styled := buildStyledRunes([]rune(f.Passage.DisplayText), []rune(f.Input), f.Cursor)
		return wrapStyledRunes(styled, width)
	case f.Status == race.Finished && f.Total > 0:
		return []string{
			fmt.Sprintf("Finished in %s  %.1f WPM  %.1f%% accuracy  %d errors", f.Timer, f.Metrics.WPM, f.Metrics.Accuracy, f.Errors),
			pendingStyle.Render("ENTER to race again · ESC to reset"),
		}
	case f.Status == race.Finished:
		return []string{pendingStyle.Render("No passages to race. Check your passages file.")}
	default:
		return []string{pendingStyle.Render("ENTER to start · ctrl+g ghost · ctrl+c quit")}
	}
}

func (m *Model) renderKeyboard() string {
	kb := m.app.Keyboard()
	rows := make([]string, 0, len(app.Layout))
	for _, row := range app.Layout {
		caps := make([]string, 0, len(row))
		for _, name := range row {
			style := keyStyle
			if kb.Lit(name) {
				style = litKeyStyle
			}
			caps = append(caps, style.Render(keyLabel(name)))
		}
		rows = append(rows, strings.Join(caps, ""))
	}
	if len(m.frame.MostUsed) > 0 {
		rows = append(rows, footerStyle.Render("most used: "+strings.Join(m.frame.MostUsed, " ")))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func keyLabel(name string) string {
	switch name {
	case "BACKSPACE":
		return "bksp"
	case "ENTER":
		return "enter"
	case "TAB":
		return "tab"
	case "SPACE":
		return strings.Repeat(" ", 24)
	default:
		return name
	}
}

func (m *Model) renderFooter() string {
	f := m.frame
	segments := []string{
		fmt.Sprintf("Progress %d%%", int(f.Metrics.Progress)),
		fmt.Sprintf("%.1f WPM", f.Metrics.WPM),
		fmt.Sprintf("%.1f%% acc", f.Metrics.Accuracy),
		fmt.Sprintf("%d errors", f.Errors),
	}
	if spark := stats.Sparkline(stats.Tail(f.Metrics.WPMHistory, sparkWidth)); spark != "" {
		segments = append(segments, "["+spark+"]")
	}
	if f.Ghost.Enabled && f.Mode == app.ModeRace {
		segments = append(segments, fmt.Sprintf("Ghost %.1f WPM", f.Ghost.WPM))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
		segments = append(segments, fmt.Sprintf("Best %.1f WPM", m.bestWPM))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) loadFooterStats() {
	if m.races == nil {
		return
	}
	races, err := m.races.ListRaces(m.ctx, model.StatsConfig{})
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to load race history")
		return
	}
	if len(races) == 0 {
		return
	}
	last := races[len(races)-1]
	m.lastWPM, _, m.lastAcc = stats.RaceMetrics(last.Chars, last.Errors, last.DurationMs)
	m.hasLast = true
	m.bestWPM = 0
	for _, r := range races {
		wpm, _, _ := stats.RaceMetrics(r.Chars, r.Errors, r.DurationMs)
		m.bestWPM = max(m.bestWPM, wpm)
	}
}
