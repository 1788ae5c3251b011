package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/ledger"
	"github.com/theirongolddev/habitgame/internal/tui/components"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
)

// updateActivity handles keys on the Activity tab.
func (a *App) updateActivity(key string) bool {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g":
		a.activityOffset = 0
	default:
		return false
	}
	return true
}

// describeEvent renders a one-line, human description of a ledger event.
func describeEvent(ev ledger.Event) string {
	switch ev.Type {
	case ledger.EventHabitAdded:
		return fmt.Sprintf("Added habit %q (%s)", ev.Name, cli.FormatPoints(ev.Points))
	case ledger.EventHabitsDeleted:
		return "Deleted " + english.Plural(ev.Count, "habit", "")
	case ledger.EventHabitCompleted:
		return fmt.Sprintf("Completed %q", ev.Name)
	case ledger.EventHabitUncompleted:
		return fmt.Sprintf("Undid %q", ev.Name)
	case ledger.EventRewardAdded:
		return fmt.Sprintf("Added reward %q (%s)", ev.Name, cli.FormatPoints(ev.Points))
	case ledger.EventRewardsDeleted:
		return "Deleted " + english.Plural(ev.Count, "reward", "")
	case ledger.EventRewardBought:
		return fmt.Sprintf("Bought %q", ev.Name)
	case ledger.EventPurchaseDeclined:
		return fmt.Sprintf("Could not afford %q (%s)", ev.Name, cli.FormatPoints(ev.Points))
	case ledger.EventDayReset:
		return "New day: " + english.Plural(ev.Count, "habit", "") + " ready again"
	default:
		return string(ev.Type)
	}
}

func (a App) renderActivityTab(cw, h int) string {
	t := theme.Active

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	timeStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	earnStyle := lipgloss.NewStyle().Foreground(t.Earn()).Background(t.Surface)
	spendStyle := lipgloss.NewStyle().Foreground(t.Spend()).Background(t.Surface)
	balStyle := lipgloss.NewStyle().Foreground(t.Balance()).Background(t.Surface)

	if len(a.events) == 0 {
		return components.ContentCard("Activity", dimStyle.Render("Nothing yet this session. Complete a habit to get started."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	descW := innerW - 16 - 8 - 12
	if descW < 20 {
		descW = 20
	}

	visible := h - 5 // card border, title, hint
	if visible < 1 {
		visible = 1
	}

	var body strings.Builder
	shown := 0
	// Newest first.
	for i := len(a.events) - 1 - a.activityOffset; i >= 0 && shown < visible; i-- {
		ev := a.events[i]

		desc := textStyle
		if ev.Type == ledger.EventPurchaseDeclined {
			desc = warnStyle
		}
		delta := timeStyle.Render(fmt.Sprintf("%8s", ""))
		switch {
		case ev.Delta > 0:
			delta = earnStyle.Render(fmt.Sprintf("%8s", cli.FormatSignedPoints(ev.Delta)))
		case ev.Delta < 0:
			delta = spendStyle.Render(fmt.Sprintf("%8s", cli.FormatSignedPoints(ev.Delta)))
		}

		body.WriteString(timeStyle.Render(fmt.Sprintf("%-16s", cli.FormatAgo(ev.Timestamp, a.now))))
		body.WriteString(desc.Render(fmt.Sprintf("%-*s", descW, cli.Truncate(describeEvent(ev), descW))))
		body.WriteString(delta)
		body.WriteString(balStyle.Render(fmt.Sprintf("%12s", cli.FormatPoints(ev.Balance))))
		body.WriteString("\n")
		shown++
	}

	body.WriteString("\n")
	body.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d events  [j/k] scroll", shown, len(a.events))))

	return components.ContentCard("Activity", body.String(), cw)
}
