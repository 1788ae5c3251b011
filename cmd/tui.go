package cmd

import (
	"fmt"

	"github.com/theirongolddev/habitgame/internal/config"
	"github.com/theirongolddev/habitgame/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive habit dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	l := buildLedger(cfg)
	app := tui.NewApp(tui.Options{
		Ledger:      l,
		Config:      cfg,
		ConfigPath:  flagConfig,
		HistoryDays: flagDays,
		NeedSetup:   !config.Exists(flagConfig),
		Logger:      logger.With("component", "tui"),
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
