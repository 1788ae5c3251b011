package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune // shortcut, shown before the name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Habits", Key: '1'},
	{Name: "Rewards", Key: '2'},
	{Name: "History", Key: '3'},
	{Name: "Activity", Key: '4'},
	{Name: "Settings", Key: '5'},
}

func tabLabel(tab Tab) string {
	return fmt.Sprintf("%c %s", tab.Key, tab.Name)
}

// TabVisualWidth returns the rendered width of a tab. Active and inactive
// tabs share the same width.
func TabVisualWidth(tab Tab) int {
	return lipgloss.Width(tabLabel(tab)) + 2
}

// RenderTabBar renders the tab bar with the given active index, followed by
// an accent underline under the active tab.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Padding(0, 1)

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	lineStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var row, under strings.Builder
	for i, tab := range Tabs {
		w := TabVisualWidth(tab)
		if i == activeIdx {
			row.WriteString(activeStyle.Render(tabLabel(tab)))
			under.WriteString(markStyle.Render(strings.Repeat("━", w)))
		} else {
			row.WriteString(inactiveStyle.Render(tabLabel(tab)))
			under.WriteString(lineStyle.Render(strings.Repeat("─", w)))
		}
		if i < len(Tabs)-1 {
			row.WriteString(sepStyle.Render("│"))
			under.WriteString(lineStyle.Render("─"))
		}
	}

	fill := lipgloss.NewStyle().Background(t.Surface)
	rowW := lipgloss.Width(row.String())
	if pad := width - rowW; pad > 0 {
		row.WriteString(fill.Render(strings.Repeat(" ", pad)))
		under.WriteString(lineStyle.Render(strings.Repeat("─", pad)))
	}

	return row.String() + "\n" + under.String()
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
