// Package config loads and saves habitgame settings and seed data.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/habitgame/internal/ledger"
	"github.com/theirongolddev/habitgame/internal/model"
)

// Config holds all habitgame configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Seed       SeedConfig       `toml:"seed"`
}

// Bounds for the history window, shared by config loading and the UIs.
const (
	MinHistoryDays = 1
	MaxHistoryDays = 365
)

// ClampHistoryDays limits days to [MinHistoryDays, MaxHistoryDays].
func ClampHistoryDays(days int) int {
	return min(MaxHistoryDays, max(MinHistoryDays, days))
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	HistoryDays int  `toml:"history_days"`
	DailyReset  bool `toml:"daily_reset"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// SeedConfig is the state the ledger starts from on every launch.
type SeedConfig struct {
	Balance int          `toml:"balance"`
	History []int        `toml:"history,omitempty"` // oldest..today
	Habits  []SeedHabit  `toml:"habits,omitempty"`
	Rewards []SeedReward `toml:"rewards,omitempty"`
}

// SeedHabit is a habit entry in the seed section.
type SeedHabit struct {
	Name      string `toml:"name"`
	Points    int    `toml:"points"`
	Completed bool   `toml:"completed,omitempty"`
}

// SeedReward is a reward entry in the seed section.
type SeedReward struct {
	Name string `toml:"name"`
	Cost int    `toml:"cost"`
}

// DefaultConfig returns the default configuration, including sample data.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			HistoryDays: 14,
			DailyReset:  true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Seed: SeedConfig{
			Balance: 120,
			History: []int{50, 70, 30, 10, 100, 5, 30, 15},
			Habits: []SeedHabit{
				{Name: "1h of exercise", Points: 20},
				{Name: "Read 30 pages", Points: 10},
				{Name: "Meditate 10 min", Points: 15, Completed: true},
				{Name: "Drink 2L of water", Points: 5},
			},
			Rewards: []SeedReward{
				{Name: "1h of video games", Cost: 50},
				{Name: "Watch a movie", Cost: 100},
				{Name: "Night out with friends", Cost: 150},
			},
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "habitgame")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "habitgame")
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path. An empty path means ConfigPath.
func LoadFrom(path string) (Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// Decoding into the sample slices would merge user entries over them
	// field by field, so seed lists start empty and fall back only when absent.
	defaults := cfg.Seed
	cfg.Seed.Habits, cfg.Seed.Rewards, cfg.Seed.History = nil, nil, nil

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if !md.IsDefined("seed", "habits") {
		cfg.Seed.Habits = defaults.Habits
	}
	if !md.IsDefined("seed", "rewards") {
		cfg.Seed.Rewards = defaults.Rewards
	}
	if !md.IsDefined("seed", "history") {
		cfg.Seed.History = defaults.History
	}
	if cfg.General.HistoryDays <= 0 {
		cfg.General.HistoryDays = DefaultConfig().General.HistoryDays
	}
	cfg.General.HistoryDays = ClampHistoryDays(cfg.General.HistoryDays)

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if theme := os.Getenv("HABITGAME_THEME"); theme != "" {
		cfg.Appearance.Theme = theme
	}
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path. An empty path means ConfigPath.
func SaveTo(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists at path (or ConfigPath when empty).
func Exists(path string) bool {
	if path == "" {
		path = ConfigPath()
	}
	_, err := os.Stat(path)
	return err == nil
}

// LedgerSeed converts the seed section into ledger state. History values
// are laid out on consecutive days ending today; completed habits count as
// completed at now.
func (c Config) LedgerSeed(now time.Time, loc *time.Location) ledger.Seed {
	seed := ledger.Seed{Balance: c.Seed.Balance}

	for _, h := range c.Seed.Habits {
		habit := model.NewHabit(h.Name, h.Points)
		if h.Completed {
			habit.CompletedToday = true
			habit.CompletedAt = now
		}
		seed.Habits = append(seed.Habits, habit)
	}
	for _, r := range c.Seed.Rewards {
		seed.Rewards = append(seed.Rewards, model.NewReward(r.Name, r.Cost))
	}

	today := model.StartOfDay(now, loc)
	n := len(c.Seed.History)
	for i, pts := range c.Seed.History {
		seed.History = append(seed.History, model.DailyPoints{
			Date:   today.AddDate(0, 0, i-(n-1)),
			Points: pts,
		})
	}
	return seed
}
