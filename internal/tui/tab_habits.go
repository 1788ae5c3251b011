package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/tui/components"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
)

// updateHabits handles keys on the Habits tab.
func (a *App) updateHabits(key string) (tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g":
		a.habitCursor = 0
	case "G":
		a.habitCursor = clampCursor(len(a.habits)-1, len(a.habits))
	case " ", "enter":
		a.toggleSelectedHabit()
	case "a":
		return a.openAddHabitForm(), true
	case "d":
		if len(a.habits) == 0 {
			return nil, true
		}
		h := a.habits[a.habitCursor]
		return a.openDeleteForm(formDeleteHabit, h.ID, h.Name), true
	default:
		return nil, false
	}
	return nil, true
}

func (a *App) toggleSelectedHabit() {
	if len(a.habits) == 0 {
		return
	}
	h := a.habits[a.habitCursor]
	a.ledger.CompleteHabit(h.ID)
	a.refresh()

	if updated, ok := a.ledger.Habit(h.ID); ok && updated.CompletedToday {
		a.setFlash(fmt.Sprintf("%s  %s", updated.Name, cli.FormatSignedPoints(updated.Points)), false)
	} else {
		a.setFlash(fmt.Sprintf("%s  %s", h.Name, cli.FormatSignedPoints(-h.Points)), false)
	}
}

func (a App) completedCount() (done, total int) {
	for _, h := range a.habits {
		if h.CompletedToday {
			done++
		}
	}
	return done, len(a.habits)
}

func (a App) renderHabitsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	done, total := a.completedCount()
	streak := "—"
	if a.summary.CurrentStreak > 0 {
		streak = fmt.Sprintf("%d %s", a.summary.CurrentStreak, english.PluralWord(a.summary.CurrentStreak, "day", ""))
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Balance", Value: cli.FormatPoints(a.balance), Color: t.Balance()},
		{Label: "Earned Today", Value: cli.FormatPoints(a.summary.Today), Color: t.Earn()},
		{Label: "Done Today", Value: fmt.Sprintf("%d/%d", done, total)},
		{Label: "Streak", Value: streak, Delta: fmt.Sprintf("best %d", a.summary.LongestStreak)},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.Earn()).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder
	if len(a.habits) == 0 {
		body.WriteString(dimStyle.Render("No habits yet. Press [a] to add one."))
	}

	nameW := innerW - 16
	if nameW < 12 {
		nameW = 12
	}
	for i, h := range a.habits {
		check := "[ ]"
		style := rowStyle
		if h.CompletedToday {
			check = "[✓]"
			style = doneStyle
		}
		pts := fmt.Sprintf("%6s", cli.FormatSignedPoints(h.Points))
		line := fmt.Sprintf("%s %-*s %s", check, nameW, cli.Truncate(h.Name, nameW), pts)

		if i == a.habitCursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selStyle.Render(line))
			if pad := innerW - 2 - lipgloss.Width(line); pad > 0 {
				body.WriteString(selStyle.Render(strings.Repeat(" ", pad)))
			}
		} else {
			body.WriteString(spaceStyle.Render("  "))
			body.WriteString(style.Render(line))
		}
		if i < len(a.habits)-1 {
			body.WriteString("\n")
		}
	}

	if total > 0 {
		barW := innerW - 8
		if barW > 40 {
			barW = 40
		}
		body.WriteString("\n\n")
		body.WriteString(components.ProgressBar(float64(done)/float64(total), barW))
	}

	body.WriteString("\n\n")
	body.WriteString(dimStyle.Render("[space] toggle  [a] add  [d] delete  [j/k] move"))

	b.WriteString(components.ContentCard("Today's Habits", body.String(), cw))
	return b.String()
}
