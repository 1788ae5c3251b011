package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/config"
	"github.com/theirongolddev/habitgame/internal/ledger"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagDays    int
	flagQuiet   bool
	flagLogFile string
)

var (
	logger  = slog.New(slog.DiscardHandler)
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "habitgame",
	Short: "Habit tracker with a points economy",
	Long:  "Complete habits to earn points, spend them on rewards, and watch your daily history.",
	RunE:  runSummary,

	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
	SilenceUsage:       true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "History window in days (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	if flagLogFile == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

func closeLogging(_ *cobra.Command, _ []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// loadConfig reads the config file, falling back to defaults with a
// warning when it cannot be parsed, and activates the configured theme.
func loadConfig() config.Config {
	cfg, err := config.LoadFrom(flagConfig)
	if err != nil {
		logger.Warn("using default config", "err", err)
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarning(fmt.Sprintf("Config error, using defaults: %s", err)))
		}
	}
	theme.SetActive(cfg.Appearance.Theme)
	return cfg
}

// historyDays resolves the history window: --days wins over the config.
func historyDays(cfg config.Config) int {
	if flagDays > 0 {
		return config.ClampHistoryDays(flagDays)
	}
	return cfg.General.HistoryDays
}

// buildLedger creates the process's single ledger from the config seed.
func buildLedger(cfg config.Config) *ledger.Ledger {
	now := time.Now()
	return ledger.New(ledger.Config{
		Location:   time.Local,
		Logger:     logger.With("component", "ledger"),
		DailyReset: cfg.General.DailyReset,
	}, cfg.LedgerSeed(now, time.Local))
}
