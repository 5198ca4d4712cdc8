// Package chart renders the risk time series as a colour-banded sparkline
// with minute tick marks, timeline labels and a threshold scale bar.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/hazard/internal/history"
	"github.com/luki/hazard/internal/risk"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorSafe    = lipgloss.Color("78")  // soft green
	colorWarning = lipgloss.Color("220") // yellow
	colorDanger  = lipgloss.Color("196") // red
	colorEmpty   = lipgloss.Color("236")
	colorTick    = lipgloss.Color("239")
)

// LevelColor returns the colour used for a risk level.
func LevelColor(l risk.Level) lipgloss.Color {
	switch l {
	case risk.Danger:
		return colorDanger
	case risk.Warning:
		return colorWarning
	default:
		return colorSafe
	}
}

// ScoreColor returns the colour of the band s falls into.
func ScoreColor(s risk.Score) lipgloss.Color {
	return LevelColor(risk.Classify(s))
}

// RenderSparkline renders bare values with no timestamp ticks.
func RenderSparkline(values []risk.Score, width int) string {
	if width <= 0 {
		return ""
	}
	pts := make([]history.Point, len(values))
	for i, v := range values {
		pts[i] = history.Point{Value: v}
	}
	return RenderSparklinePoints(pts, width)
}

// RenderSparklinePoints renders scores on a fixed 0-100 scale. Each point
// takes one cell; a subtle pipe replaces the cell at each minute boundary.
func RenderSparklinePoints(points []history.Point, width int) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(colorEmpty)
	if len(points) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	var sb strings.Builder

	for i := 0; i < width-len(points); i++ {
		sb.WriteString(dim.Render("╌"))
	}

	tickStyle := lipgloss.NewStyle().Foreground(colorTick)

	for i, p := range points {
		if isMinuteTick(points, i) {
			sb.WriteString(tickStyle.Render("│"))
			continue
		}
		style := lipgloss.NewStyle().Foreground(ScoreColor(p.Value))
		if risk.Classify(p.Value) == risk.Danger {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[blockIndex(p.Value)])))
	}

	return sb.String()
}

func blockIndex(s risk.Score) int {
	norm := float64(s-risk.MinScore) / float64(risk.MaxScore-risk.MinScore)
	idx := int(norm * float64(len(sparkBlocks)-1))
	if idx < 0 {
		return 0
	}
	if idx >= len(sparkBlocks) {
		return len(sparkBlocks) - 1
	}
	return idx
}

func isMinuteTick(points []history.Point, i int) bool {
	p := points[i]
	if p.Time.IsZero() {
		return false
	}
	if p.Time.Second() == 0 {
		return true
	}
	if i > 0 && !points[i-1].Time.IsZero() {
		return p.Time.Minute() != points[i-1].Time.Minute()
	}
	return false
}

// RenderTimeline renders the time labels under the sparkline, showing
// HH:MM at each minute tick position.
func RenderTimeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	type tick struct {
		pos   int
		label string
	}
	var ticks []tick

	for i, p := range points {
		if isMinuteTick(points, i) {
			ticks = append(ticks, tick{pos: padLen + i, label: p.Time.Format("15:04")})
		}
	}

	lastEnd := -1
	for _, t := range ticks {
		start := t.pos - 2
		if start < 0 {
			start = 0
		}
		end := start + len(t.label)
		if end > width {
			continue
		}
		if start <= lastEnd+1 {
			continue
		}
		for j, ch := range t.label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(colorTick).Render(string(line))
}

// RenderEdgeLabels renders the first and last point labels at both ends of
// a width-wide line.
func RenderEdgeLabels(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	first, last := points[0].Label, points[len(points)-1].Label
	gap := width - len(first) - len(last)
	if gap < 1 || len(points) == 1 {
		return lipgloss.NewStyle().Foreground(colorTick).Render(last)
	}
	return lipgloss.NewStyle().Foreground(colorTick).Render(first + strings.Repeat(" ", gap) + last)
}

// RenderThresholdScale renders a 0-100 bar with the warning and danger
// thresholds marked and the current score highlighted.
func RenderThresholdScale(current risk.Score, width int) string {
	if width <= 0 {
		return ""
	}

	pos := func(s risk.Score) int {
		p := int(float64(width-1) * float64(s-risk.MinScore) / float64(risk.MaxScore-risk.MinScore))
		if p < 0 {
			return 0
		}
		if p >= width {
			return width - 1
		}
		return p
	}

	warnPos := pos(risk.WarningThreshold)
	dangerPos := pos(risk.DangerThreshold)
	curPos := pos(current)

	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch i {
		case curPos:
			sb.WriteString(lipgloss.NewStyle().Foreground(ScoreColor(current)).Bold(true).Render("◆"))
		case dangerPos:
			sb.WriteString(lipgloss.NewStyle().Foreground(colorDanger).Render("▪"))
		case warnPos:
			sb.WriteString(lipgloss.NewStyle().Foreground(colorWarning).Render("▪"))
		default:
			sb.WriteString(lipgloss.NewStyle().Foreground(colorEmpty).Render("·"))
		}
	}

	return sb.String()
}

// RenderScoreValue renders the score with colour coding.
func RenderScoreValue(s risk.Score) string {
	style := lipgloss.NewStyle().Foreground(ScoreColor(s))
	if risk.Classify(s) == risk.Danger {
		style = style.Bold(true)
	}
	return style.Render(fmt.Sprintf("%3d", s))
}

// RenderLevelBadge renders the level caption in its colour.
func RenderLevelBadge(l risk.Level) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("16")).
		Background(LevelColor(l)).
		Bold(true).
		Padding(0, 1).
		Render(l.Title())
}
