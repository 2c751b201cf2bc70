// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type keyMap struct {
	Quit        key.Binding
	WiderCurve  key.Binding
	NarrowCurve key.Binding
	Top         key.Binding
	Bottom      key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	WiderCurve:  key.NewBinding(key.WithKeys("="), key.WithHelp("=", "wider window")),
	NarrowCurve: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower window")),
	Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
}

// Model implements the Bubble Tea stats UI: the plain-text report in a
// scrollable viewport.
type Model struct {
	ctx    context.Context
	lister stats.RaceLister
	cfg    model.StatsConfig

	report stats.Report
	errMsg string
	vp     viewport.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(ctx context.Context, lister stats.RaceLister, cfg model.StatsConfig) *Model {
	m := &Model{
		ctx:    ctx,
		lister: lister,
		cfg:    cfg,
		vp:     viewport.New(0, 0),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = m.width
		m.vp.Height = max(1, m.height-2)
		m.renderContent()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.WiderCurve):
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case key.Matches(msg, keys.NarrowCurve):
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case key.Matches(msg, keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := fitLines(m.renderHeader(), m.width, 1)
	body := fitLines(m.vp.View(), m.width, m.vp.Height)
	footer := fitLines(m.renderFooter(), m.width, 1)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderHeader() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("since=%s  last=%s  window=%d", since, last, m.cfg.CurveWindow)
	return titleStyle.Render("tuiracer stats") + "  " + headerStyle.Render(truncateLine(summary, max(0, m.width-16)))
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	return headerStyle.Render("Scroll: up/down/pgup/pgdn  Window: -/=  Top/Bottom: g/G  Quit: q")
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(m.ctx, m.lister, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.vp.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.renderContent()
}

func (m *Model) renderContent() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	var buf bytes.Buffer
	if err := m.report.Render(&buf, m.cfg, width); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.vp.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
