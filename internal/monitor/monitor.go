// Package monitor implements the live hazard dashboard TUI using BubbleTea:
// sensor status, a colour-coded risk sparkline and the danger event log.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/hazard/internal/alert"
	"github.com/luki/hazard/internal/chart"
	"github.com/luki/hazard/internal/dashboard"
	"github.com/luki/hazard/internal/history"
	"github.com/luki/hazard/internal/risk"
)

const dispatchTimeout = 2 * time.Second

// Dispatcher is the part of the dashboard controller the UI drives.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd dashboard.Command) error
	State() dashboard.State
}

// ── Messages ─────────────────────────────────────────────────────────

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type dispatchedMsg struct{}

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live dashboard.
type Model struct {
	ctrl      Dispatcher
	bridge    *Bridge
	snap      *dashboard.Snapshot
	state     dashboard.State
	interval  time.Duration
	recording string
	err       error
	width     int
	height    int
	scroll    int
	startTime time.Time
}

// Options carries display settings that do not come from snapshots.
type Options struct {
	Interval     time.Duration
	RecordingDir string // shown in the title bar when non-empty
}

// New creates the initial model. bridge must be registered as a renderer on
// the controller behind ctrl.
func New(ctrl Dispatcher, bridge *Bridge, opts Options) Model {
	return Model{
		ctrl:      ctrl,
		bridge:    bridge,
		state:     ctrl.State(),
		interval:  opts.Interval,
		recording: opts.RecordingDir,
		startTime: time.Now(),
	}
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) dispatch(cmd dashboard.Command) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := m.ctrl.Dispatch(ctx, cmd); err != nil {
			return errMsg{fmt.Errorf("dispatch: %w", err)}
		}
		return dispatchedMsg{}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.bridge.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.bridge.Close()
			return m, tea.Quit
		case "r", " ", "enter":
			return m, m.dispatch(dashboard.RunOnce{})
		case "a":
			// m.state may lag behind a state change still queued in the bridge.
			return m, m.dispatch(dashboard.SetPeriodic{Enabled: m.ctrl.State() != dashboard.StatePeriodic})
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		s := dashboard.Snapshot(msg)
		m.snap = &s
		m.err = nil
		return m, m.bridge.wait()

	case stateMsg:
		m.state = dashboard.State(msg)
		return m, m.bridge.wait()

	case errMsg:
		m.err = msg.err

	case dispatchedMsg:
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorHeading  = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorValue    = lipgloss.Color("250")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorAuto     = lipgloss.Color("78")
	colorCrit     = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if m.snap == nil {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for the first reading... press r to simulate.")
		sections = append(sections, waiting)
	} else {
		sections = append(sections,
			m.renderStatusPanel(contentWidth),
			m.renderChartPanel(contentWidth),
			m.renderAlertPanel(contentWidth),
		)
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	start := m.scroll
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("HAZARD MONITOR")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	var statusParts []string

	statusParts = append(statusParts, dimS.Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime)))))

	if m.snap != nil {
		statusParts = append(statusParts, dimS.Render(fmt.Sprintf("#%d %s", m.snap.Cycle, m.snap.Time.Format("15:04:05"))))
	}

	if m.state == dashboard.StatePeriodic {
		statusParts = append(statusParts, lipgloss.NewStyle().
			Foreground(colorAuto).
			Bold(true).
			Render(fmt.Sprintf("AUTO %s", m.interval)))
	} else {
		statusParts = append(statusParts, dimS.Render("MANUAL"))
	}

	if m.recording != "" {
		rec := lipgloss.NewStyle().Foreground(colorCrit).Render("REC") + dimS.Render(" "+m.recording)
		statusParts = append(statusParts, rec)
	}

	sep := dimS.Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

func (m Model) renderStatusPanel(width int) string {
	s := m.snap
	labelS := lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	valS := lipgloss.NewStyle().Foreground(colorValue)

	heading := lipgloss.NewStyle().Bold(true).Foreground(colorHeading).Render("Sensors")

	rows := []string{
		heading,
		labelS.Render("temperature") + valS.Render(s.Reading.TemperatureText()),
		labelS.Render("gas") + valS.Render(fmt.Sprintf("%d", s.Reading.GasLevel)),
		labelS.Render("smoke") + valS.Render(s.Reading.SmokeText()),
		labelS.Render("motion") + valS.Render(s.Reading.MotionText()),
	}

	scaleWidth := width - 40
	if scaleWidth < 10 {
		scaleWidth = 10
	}
	if scaleWidth > 60 {
		scaleWidth = 60
	}
	scoreLine := labelS.Render("risk score") + chart.RenderScoreValue(s.Score) + "  " +
		chart.RenderLevelBadge(s.Level) + "  " + chart.RenderThresholdScale(s.Score, scaleWidth)
	rows = append(rows, scoreLine)

	return panel(width, rows)
}

func (m Model) renderChartPanel(width int) string {
	s := m.snap
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(colorValue)

	st := s.Stats
	chartWidth := st.Capacity
	if chartWidth < 1 {
		chartWidth = history.DefaultCapacity
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(colorHeading).Render("Risk history") +
		dimS.Render(fmt.Sprintf("  last %d of %d", len(s.Series), chartWidth))

	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")
	spark := chart.RenderSparklinePoints(s.Series, chartWidth)

	stats := dimS.Render(" avg") + valS.Render(fmt.Sprintf("%5.1f", st.Avg)) +
		dimS.Render(" lo") + valS.Render(fmt.Sprintf("%4d", st.Low)) +
		dimS.Render(" pk") + valS.Render(fmt.Sprintf("%4d", st.Peak))

	rows := []string{heading, frameL + spark + frameR + stats}

	if timeline := chart.RenderTimeline(s.Series, chartWidth); strings.TrimSpace(timeline) != "" {
		rows = append(rows, " "+timeline)
	}
	if edges := chart.RenderEdgeLabels(s.Series, chartWidth+2); edges != "" {
		rows = append(rows, edges)
	}

	return panel(width, rows)
}

func (m Model) renderAlertPanel(width int) string {
	s := m.snap
	dimS := lipgloss.NewStyle().Foreground(colorDim)

	heading := lipgloss.NewStyle().Bold(true).Foreground(colorHeading).Render("Danger events") +
		dimS.Render(fmt.Sprintf("  %d", len(s.Alerts)))
	rows := []string{heading}

	if len(s.Alerts) == 0 {
		rows = append(rows, dimS.Render(alert.Placeholder))
		return panel(width, rows)
	}

	timeS := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	msgS := lipgloss.NewStyle().Foreground(colorLabel)
	newS := lipgloss.NewStyle().Foreground(chart.LevelColor(risk.Danger)).Bold(true)

	for i, rec := range s.Alerts {
		line := timeS.Render(rec.Timestamp) + "  " + msgS.Render(truncate(rec.Message, width-30))
		if i == 0 && s.Alert != nil && s.Alert.ID == rec.ID {
			line = newS.Render("● ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	return panel(width, rows)
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	swatch := func(l risk.Level) string {
		return lipgloss.NewStyle().Foreground(chart.LevelColor(l)).Render("██")
	}
	legend := swatch(risk.Safe) + dimS.Render(" safe ") +
		swatch(risk.Warning) + dimS.Render(" warning ") +
		swatch(risk.Danger) + dimS.Render(" danger")

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  r") + keyS.Render(":simulate") +
		dimS.Render("  a") + keyS.Render(":auto") +
		dimS.Render("  j/k") + keyS.Render(":scroll")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func panel(width int, rows []string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
