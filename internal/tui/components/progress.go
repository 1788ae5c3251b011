package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clampPct(pct)
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	barColor := ColorForPct(pct)
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForPct returns a color that warms up as pct approaches 1.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.GreenBright
	case pct >= 0.7:
		return t.Green
	case pct >= 0.4:
		return t.Yellow
	default:
		return t.Orange
	}
}

// GoalBar renders how far current is toward target, e.g. the balance toward
// a reward's cost. The trailing text is "ready" once the goal is met.
func GoalBar(label string, current, target, labelW, barWidth int) string {
	t := theme.Active

	pct := 1.0
	if target > 0 {
		pct = clampPct(float64(current) / float64(target))
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorForPct(pct))),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(ColorForPct(pct)).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	status := fmt.Sprintf("%3.0f%%", pct*100)
	if pct >= 1 {
		status = "ready"
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(status)
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
