package components

import (
	"strings"

	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Flash is a transient status-bar message.
type Flash struct {
	Text string
	Warn bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// current flash message (if any) and balance on the right.
func RenderStatusBar(width int, balance string, flash Flash) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	balanceStyle := lipgloss.NewStyle().Foreground(t.Balance()).Background(t.Surface).Bold(true)
	flashStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	if flash.Warn {
		flashStyle = flashStyle.Foreground(t.Orange)
	}

	left := hintStyle.Render(" [?]help  [q]uit")
	right := balanceStyle.Render("◆ "+balance) + barStyle.Render(" ")
	if flash.Text != "" {
		right = flashStyle.Render(flash.Text) + barStyle.Render("  ") + right
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + barStyle.Render(strings.Repeat(" ", padding)) + right
}
