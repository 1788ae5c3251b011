package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the CLI styles for the active theme. Rebuilt per render so
// a theme selected after package init still applies.
type palette struct {
	border  lipgloss.Color
	title   lipgloss.Style
	header  lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	dim     lipgloss.Style
	earn    lipgloss.Style
	spend   lipgloss.Style
	balance lipgloss.Style
	warn    lipgloss.Style
}

func styles() palette {
	t := theme.Active
	return palette{
		border:  t.Border,
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Align(lipgloss.Center),
		header:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:   lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:   lipgloss.NewStyle().Foreground(t.TextMuted),
		dim:     lipgloss.NewStyle().Foreground(t.TextDim),
		earn:    lipgloss.NewStyle().Foreground(t.Earn()),
		spend:   lipgloss.NewStyle().Foreground(t.Spend()),
		balance: lipgloss.NewStyle().Bold(true).Foreground(t.Balance()),
		warn:    lipgloss.NewStyle().Foreground(t.Orange),
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	st := styles()
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(st.border).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(st.title.Render(title))
}

// RenderBalance renders the current balance line shown under titles.
func RenderBalance(balance int) string {
	st := styles()
	label := st.muted.Render("  Balance ")
	if balance < 0 {
		return label + st.warn.Render(FormatPoints(balance))
	}
	return label + st.balance.Render(FormatPoints(balance))
}

// RenderEarned styles a positive point value in the earn color.
func RenderEarned(s string) string { return styles().earn.Render(s) }

// RenderSpent styles a point value in the spend color.
func RenderSpent(s string) string { return styles().spend.Render(s) }

// RenderMuted styles secondary text.
func RenderMuted(s string) string { return styles().muted.Render(s) }

// RenderWarning styles a warning line.
func RenderWarning(s string) string { return styles().warn.Render(s) }

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	st := styles()
	widths := columnWidths(t, numCols)

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(st.header.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(st.dim, widths, "╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(st.dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(st.header.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule(st.dim, widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule(st.dim, widths, "├", "┼", "┤"))
			continue
		}

		b.WriteString(st.dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}

			// First column left-aligned, the rest right-aligned.
			var padded string
			if i == 0 {
				padded = " " + cell + strings.Repeat(" ", pad) + " "
			} else {
				padded = " " + strings.Repeat(" ", pad) + cell + " "
			}
			b.WriteString(st.value.Render(padded))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule(st.dim, widths, "╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func rule(dim lipgloss.Style, widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dim.Render(left))
	for i, w := range widths {
		b.WriteString(dim.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dim.Render(mid))
		}
	}
	b.WriteString(dim.Render(right))
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders a simple text progress bar.
func RenderProgressBar(current, total int, width int) string {
	if total <= 0 {
		return ""
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s/%s",
		styles().earn.Render(bar),
		FormatNumber(int64(current)),
		FormatNumber(int64(total)),
	)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}
