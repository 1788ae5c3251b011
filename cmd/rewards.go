package cmd

import (
	"fmt"

	"github.com/theirongolddev/habitgame/internal/cli"

	"github.com/spf13/cobra"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List rewards and what the balance can buy",
	RunE:  runRewards,
}

func init() {
	rootCmd.AddCommand(rewardsCmd)
}

func runRewards(_ *cobra.Command, _ []string) error {
	l := buildLedger(loadConfig())
	rewards := l.Rewards()
	balance := l.Balance()

	if len(rewards) == 0 {
		fmt.Println("\n  No rewards configured.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("REWARDS"))
	fmt.Println(cli.RenderBalance(balance))
	fmt.Println()

	rows := make([][]string, 0, len(rewards))
	for _, r := range rewards {
		status := cli.RenderEarned("affordable")
		if r.Cost > balance {
			status = cli.RenderSpent(fmt.Sprintf("need %s more", cli.FormatNumber(int64(r.Cost-balance))))
		}
		rows = append(rows, []string{r.Name, cli.FormatPoints(r.Cost), status})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Reward", "Cost", "Status"},
		Rows:    rows,
	}))
	return nil
}
