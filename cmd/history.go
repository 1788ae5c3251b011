package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/model"
	"github.com/theirongolddev/habitgame/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagWeekly bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Daily points table",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVarP(&flagWeekly, "weekly", "w", false, "Group by calendar week")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	l := buildLedger(cfg)
	days := historyDays(cfg)

	loc := l.Location()
	since, until := pipeline.Window(l.Now(), days, loc)
	history := l.History()

	if len(pipeline.FilterByTime(history, since, until)) == 0 {
		fmt.Println("\n  No points earned in the selected period.")
		return nil
	}

	if flagWeekly {
		return printWeekly(history, since, until, loc, days)
	}

	filled := pipeline.FillDays(history, since, until, loc)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY POINTS  Last %dd", days)))
	fmt.Println()

	rows := make([][]string, 0, len(filled))
	total := 0
	// Newest first, like a log.
	for i := len(filled) - 1; i >= 0; i-- {
		d := filled[i]
		total += d.Points
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.FormatNumber(int64(d.Points)),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatNumber(int64(total))})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Points"},
		Rows:    rows,
	}))
	return nil
}

func printWeekly(history []model.DailyPoints, since, until time.Time, loc *time.Location, days int) error {
	weeks := pipeline.AggregateWeeks(pipeline.FilterByTime(history, since, until), loc)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEKLY POINTS  Last %dd", days)))
	fmt.Println()

	rows := make([][]string, 0, len(weeks))
	for i := len(weeks) - 1; i >= 0; i-- {
		w := weeks[i]
		rows = append(rows, []string{
			w.WeekStart.Format("2006-01-02"),
			cli.FormatNumber(int64(w.Points)),
			fmt.Sprintf("%d/7", w.ActiveDays),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week of", "Points", "Active"},
		Rows:    rows,
	}))
	return nil
}
