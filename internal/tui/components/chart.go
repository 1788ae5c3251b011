package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := maxOf(values)
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}
	return style.Render(buf.String())
}

// BarChart renders a vertical bar chart of daily values with a Y axis and
// optional X labels. Falls back to a sparkline when the area is too small.
// highlight, when in range, marks one bar (today) in the accent color.
func BarChart(values []float64, labels []string, color lipgloss.Color, highlight, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	peak := maxOf(values)
	if peak == 0 {
		peak = 1
	}
	step := chartTickStep(peak)
	ceiling := math.Ceil(peak/step) * step
	ticks := int(math.Round(ceiling / step))
	rowsPerTick := max(1, height/ticks)
	chartH := rowsPerTick * ticks

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	chartW := max(5, width-yLabelW-1)

	n := len(values)
	gap := 1
	barW := max(1, (chartW-(n-1)*gap)/n)
	if barW > 6 {
		barW = 6
	}
	// Too many days for the width: keep the most recent ones.
	if n*(barW+gap)-gap > chartW {
		keep := (chartW + gap) / (barW + gap)
		drop := n - keep
		values = values[drop:]
		if len(labels) == n {
			labels = labels[drop:]
		}
		highlight -= drop
		n = keep
	}
	axisLen := n*barW + (n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	todayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(step * float64(row/rowsPerTick))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			style := barStyle
			if i == highlight {
				style = todayStyle
			}
			switch {
			case v >= top:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(blocks)))
				idx = max(0, min(idx, len(blocks)-1))
				b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(placeLabels(labels, barW, gap, axisLen)))
	}
	return b.String()
}

// placeLabels lays labels under their bars, skipping any that would overlap
// the previous one.
func placeLabels(labels []string, barW, gap, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * (barW + gap)
		end := pos + len([]rune(lbl))
		if pos <= lastEnd || end > axisLen {
			continue
		}
		copy(buf[pos:end], []rune(lbl))
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~4 ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 4 {
		return 1
	}
	rough := peak / 4
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v >= 1e3 {
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	}
	return fmt.Sprintf("%.0f", v)
}

func maxOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	return peak
}
