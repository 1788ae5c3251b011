package cmd

import (
	"fmt"

	"github.com/theirongolddev/habitgame/internal/cli"

	"github.com/spf13/cobra"
)

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "List habits and today's completion",
	RunE:  runHabits,
}

func init() {
	rootCmd.AddCommand(habitsCmd)
}

func runHabits(_ *cobra.Command, _ []string) error {
	l := buildLedger(loadConfig())
	habits := l.Habits()

	if len(habits) == 0 {
		fmt.Println("\n  No habits configured.")
		fmt.Println("  Add some under [[seed.habits]] in the config, or press [a] in `habitgame tui`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("HABITS"))
	fmt.Println()

	done := 0
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		status := cli.RenderMuted("todo")
		if h.CompletedToday {
			status = cli.RenderEarned("done")
			done++
		}
		rows = append(rows, []string{h.Name, cli.FormatPoints(h.Points), status})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Habit", "Points", "Today"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println("  " + cli.RenderProgressBar(done, len(habits), 30))
	fmt.Println(cli.RenderBalance(l.Balance()))
	return nil
}
