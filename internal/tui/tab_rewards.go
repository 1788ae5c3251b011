package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/ledger"
	"github.com/theirongolddev/habitgame/internal/tui/components"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateRewards handles keys on the Rewards tab.
func (a *App) updateRewards(key string) (tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g":
		a.rewardCursor = 0
	case "G":
		a.rewardCursor = clampCursor(len(a.rewards)-1, len(a.rewards))
	case "enter", "b":
		a.buySelectedReward()
	case "a":
		return a.openAddRewardForm(), true
	case "d":
		if len(a.rewards) == 0 {
			return nil, true
		}
		r := a.rewards[a.rewardCursor]
		return a.openDeleteForm(formDeleteReward, r.ID, r.Name), true
	default:
		return nil, false
	}
	return nil, true
}

func (a *App) buySelectedReward() {
	if len(a.rewards) == 0 {
		return
	}
	r := a.rewards[a.rewardCursor]
	err := a.ledger.BuyReward(r.ID)
	a.refresh()

	switch {
	case err == nil:
		a.setFlash(fmt.Sprintf("Enjoy %s!  %s", r.Name, cli.FormatSignedPoints(-r.Cost)), false)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		a.setFlash(fmt.Sprintf("Not enough points: %s more for %s", cli.FormatNumber(int64(r.Cost-a.balance)), r.Name), true)
	default:
		a.logger.Warn("buy reward", "reward", r.Name, "err", err)
		a.setFlash("Purchase failed", true)
	}
}

func (a App) renderRewardsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	affordable := 0
	cheapest := 0
	for i, r := range a.rewards {
		if r.Cost <= a.balance {
			affordable++
		}
		if i == 0 || r.Cost < cheapest {
			cheapest = r.Cost
		}
	}
	cheapestStr := "—"
	if len(a.rewards) > 0 {
		cheapestStr = cli.FormatPoints(cheapest)
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Balance", Value: cli.FormatPoints(a.balance), Color: t.Balance()},
		{Label: "Affordable", Value: fmt.Sprintf("%d/%d", affordable, len(a.rewards))},
		{Label: "Cheapest", Value: cheapestStr},
		{Label: "Spent This Session", Value: cli.FormatPoints(a.spent), Color: t.Spend()},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder
	if len(a.rewards) == 0 {
		body.WriteString(dimStyle.Render("No rewards yet. Press [a] to add one."))
	}

	labelW := 24
	if a.isCompactLayout() {
		labelW = 18
	}
	barW := innerW - labelW - 22
	if barW < 10 {
		barW = 10
	}
	for i, r := range a.rewards {
		if i == a.rewardCursor {
			body.WriteString(markerStyle.Render("▸ "))
		} else {
			body.WriteString(spaceStyle.Render("  "))
		}
		body.WriteString(components.GoalBar(cli.Truncate(r.Name, labelW), a.balance, r.Cost, labelW, barW))
		body.WriteString(costStyle.Render(fmt.Sprintf("  %10s", cli.FormatPoints(r.Cost))))
		if i < len(a.rewards)-1 {
			body.WriteString("\n")
		}
	}

	body.WriteString("\n\n")
	body.WriteString(dimStyle.Render("[enter] buy  [a] add  [d] delete  [j/k] move"))

	b.WriteString(components.ContentCard("Rewards", body.String(), cw))
	return b.String()
}
