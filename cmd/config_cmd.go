// Package cmd implements the habitgame CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(flagConfig)
	if err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(flagConfig) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    History days: %d\n", cfg.General.HistoryDays)
	fmt.Printf("    Daily reset:  %v\n", cfg.General.DailyReset)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Seed]")
	fmt.Printf("    Balance: %s\n", cli.FormatPoints(cfg.Seed.Balance))
	fmt.Printf("    History: %d days\n", len(cfg.Seed.History))
	fmt.Printf("    Habits:  %d\n", len(cfg.Seed.Habits))
	for _, h := range cfg.Seed.Habits {
		fmt.Printf("      - %s (%s)\n", h.Name, cli.FormatPoints(h.Points))
	}
	fmt.Printf("    Rewards: %d\n", len(cfg.Seed.Rewards))
	for _, r := range cfg.Seed.Rewards {
		fmt.Printf("      - %s (%s)\n", r.Name, cli.FormatPoints(r.Cost))
	}
	fmt.Println()

	fmt.Println("  Run `habitgame setup` to reconfigure.")
	return nil
}
