package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/config"
	"github.com/theirongolddev/habitgame/internal/pipeline"
	"github.com/theirongolddev/habitgame/internal/tui/components"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const historyDaysStep = 7

// updateHistory handles keys on the History tab.
func (a *App) updateHistory(key string) bool {
	switch key {
	case "+", "=":
		a.historyDays = config.ClampHistoryDays(a.historyDays + historyDaysStep)
	case "-", "_":
		a.historyDays = config.ClampHistoryDays(a.historyDays - historyDaysStep)
	default:
		return false
	}
	a.refresh()
	return true
}

func (a App) renderHistoryTab(cw int) string {
	t := theme.Active
	s := a.summary
	prev := a.prevSummary
	var b strings.Builder

	best := "—"
	if s.BestDayPoints > 0 {
		best = fmt.Sprintf("%s %s", cli.FormatPoints(s.BestDayPoints), s.BestDay.Format("Jan 2"))
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{
			Label: fmt.Sprintf("Earned (%dd)", a.historyDays),
			Value: cli.FormatPoints(s.TotalEarned),
			Delta: cli.FormatDelta(s.TotalEarned, prev.TotalEarned) + " vs prev",
			Color: t.Earn(),
		},
		{
			Label: "Per Day",
			Value: cli.FormatAverage(s.PointsPerDay),
			Delta: fmt.Sprintf("%s per active day", cli.FormatAverage(s.PointsPerActiveDay)),
		},
		{
			Label: "Active Days",
			Value: fmt.Sprintf("%d/%d", s.ActiveDays, s.WindowDays),
			Delta: cli.FormatPercent(safeRatio(s.ActiveDays, s.WindowDays)),
		},
		{Label: "Best Day", Value: best, Delta: fmt.Sprintf("longest streak %d", s.LongestStreak)},
	}, cw))
	b.WriteString("\n")

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Daily Points (%dd)", a.historyDays),
		components.BarChart(pipeline.Values(a.days), pipeline.ChartLabels(a.days), t.Green, len(a.days)-1,
			components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Weekly", a.renderWeeks(cw), cw))
	return b.String()
}

func (a App) renderWeeks(cw int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(a.weeks) == 0 {
		return dimStyle.Render("No points earned in this window yet.")
	}

	peak := 0
	for _, w := range a.weeks {
		peak = max(peak, w.Points)
	}
	barW := components.CardInnerWidth(cw) - 40
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	for i := len(a.weeks) - 1; i >= 0; i-- {
		w := a.weeks[i]
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", "Wk "+w.WeekStart.Format("Jan 2"))))
		body.WriteString(valueStyle.Render(fmt.Sprintf("%10s", cli.FormatPoints(w.Points))))
		body.WriteString(labelStyle.Render(fmt.Sprintf("  %d/7  ", w.ActiveDays)))
		filled := 0
		if peak > 0 {
			filled = w.Points * barW / peak
		}
		body.WriteString(lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render(strings.Repeat("▬", filled)))
		if i > 0 {
			body.WriteString("\n")
		}
	}
	body.WriteString("\n\n")
	body.WriteString(dimStyle.Render("[+/-] change window"))
	return body.String()
}

func safeRatio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
