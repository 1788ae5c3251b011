// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPoints formats a point amount with its unit.
// e.g., 1 -> "1 pt", 1500 -> "1,500 pts"
func FormatPoints(n int) string {
	if n == 1 || n == -1 {
		return FormatNumber(int64(n)) + " pt"
	}
	return FormatNumber(int64(n)) + " pts"
}

// FormatSignedPoints formats a balance change with an explicit sign.
// e.g., 20 -> "+20", -50 -> "-50", 0 -> "0"
func FormatSignedPoints(delta int) string {
	switch {
	case delta > 0:
		return "+" + FormatNumber(int64(delta))
	case delta < 0:
		return "-" + FormatNumber(int64(-delta))
	default:
		return "0"
	}
}

// FormatAverage formats a per-day average with one decimal.
func FormatAverage(f float64) string {
	return humanize.CommafWithDigits(f, 1)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatDelta formats the change between two periods as a signed percentage.
// Returns "new" when there is nothing to compare against.
func FormatDelta(current, previous int) string {
	if previous == 0 {
		if current == 0 {
			return "0%"
		}
		return "new"
	}
	pct := float64(current-previous) / float64(previous)
	if pct >= 0 {
		return "+" + FormatPercent(pct)
	}
	return "-" + FormatPercent(-pct)
}

// FormatAgo formats a timestamp relative to now ("3 minutes ago").
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if max <= 0 || len(r) <= max {
		return string(r)
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
