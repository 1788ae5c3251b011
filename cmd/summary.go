package cmd

import (
	"fmt"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, today's progress and history summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	l := buildLedger(cfg)
	days := historyDays(cfg)

	now := l.Now()
	loc := l.Location()
	history := l.History()
	since, until := pipeline.Window(now, days, loc)
	stats := pipeline.Summarize(history, l.Balance(), since, until, now, loc)
	prev := pipeline.Summarize(history, l.Balance(), since.AddDate(0, 0, -days), since, now, loc)

	habits := l.Habits()
	done := 0
	for _, h := range habits {
		if h.CompletedToday {
			done++
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HABITGAME  Last %dd", days)))
	fmt.Println(cli.RenderBalance(stats.Balance))
	fmt.Println()

	bestDay := "-"
	if stats.BestDayPoints > 0 {
		bestDay = fmt.Sprintf("%s (%s)", cli.FormatPoints(stats.BestDayPoints), stats.BestDay.Format("Mon Jan 2"))
	}

	rows := [][]string{
		{"Balance", cli.FormatPoints(stats.Balance)},
		{"Earned today", cli.FormatPoints(stats.Today)},
		{"Habits done", fmt.Sprintf("%d/%d", done, len(habits))},
		{"---"},
		{"Earned", fmt.Sprintf("%s  (%s vs prev %dd)", cli.FormatPoints(stats.TotalEarned), cli.FormatDelta(stats.TotalEarned, prev.TotalEarned), days)},
		{"Points/day", cli.FormatAverage(stats.PointsPerDay)},
		{"Active days", fmt.Sprintf("%d/%d", stats.ActiveDays, stats.WindowDays)},
		{"Best day", bestDay},
		{"---"},
		{"Current streak", fmt.Sprintf("%d days", stats.CurrentStreak)},
		{"Longest streak", fmt.Sprintf("%d days", stats.LongestStreak)},
		{"Trend", cli.RenderSparkline(pipeline.Values(pipeline.FillDays(history, since, until, loc)))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	return nil
}
