package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/habitgame/internal/ledger"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HABITGAME_THEME", "")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.HistoryDays != 14 {
		t.Fatalf("HistoryDays = %d, want 14", cfg.General.HistoryDays)
	}
	if !cfg.General.DailyReset {
		t.Fatal("DailyReset = false, want true")
	}
	if len(cfg.Seed.Habits) != 4 || len(cfg.Seed.Rewards) != 3 {
		t.Fatalf("seed = %d habits/%d rewards, want 4/3", len(cfg.Seed.Habits), len(cfg.Seed.Rewards))
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HABITGAME_THEME", "")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Appearance.Theme = "tokyo-night"
	cfg.General.DailyReset = false
	cfg.Seed.Balance = 7
	cfg.Seed.Habits = []SeedHabit{{Name: "Stretch", Points: 3, Completed: true}}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if !Exists(path) {
		t.Fatal("Exists = false after SaveTo")
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q, want tokyo-night", got.Appearance.Theme)
	}
	if got.General.DailyReset {
		t.Error("DailyReset = true, want false")
	}
	if got.Seed.Balance != 7 {
		t.Errorf("Balance = %d, want 7", got.Seed.Balance)
	}
	if len(got.Seed.Habits) != 1 || got.Seed.Habits[0].Name != "Stretch" || !got.Seed.Habits[0].Completed {
		t.Errorf("Habits = %+v, want one completed Stretch", got.Seed.Habits)
	}
}

func TestLoadFrom_ParseErrorReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\nhistory_days = "), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("LoadFrom error = nil, want parse error")
	}
	if cfg.General.HistoryDays != 14 {
		t.Fatalf("HistoryDays = %d, want default 14", cfg.General.HistoryDays)
	}
}

func TestThemeEnvOverride(t *testing.T) {
	t.Setenv("HABITGAME_THEME", "catppuccin-mocha")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Appearance.Theme != "catppuccin-mocha" {
		t.Fatalf("Theme = %q, want catppuccin-mocha", cfg.Appearance.Theme)
	}
}

func TestLedgerSeed(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 18, 30, 0, 0, loc)
	seed := DefaultConfig().LedgerSeed(now, loc)

	if seed.Balance != 120 {
		t.Fatalf("Balance = %d, want 120", seed.Balance)
	}
	if len(seed.History) != 8 {
		t.Fatalf("History len = %d, want 8", len(seed.History))
	}
	first := seed.History[0].Date
	last := seed.History[7].Date
	if !first.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, loc)) {
		t.Errorf("first history day = %v, want 2025-03-03", first)
	}
	if !last.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, loc)) || seed.History[7].Points != 15 {
		t.Errorf("last history entry = %v/%d, want 2025-03-10/15", last, seed.History[7].Points)
	}

	l := ledger.New(ledger.Config{Clock: func() time.Time { return now }, Location: loc}, seed)
	var completed int
	for _, h := range l.Habits() {
		if h.CompletedToday {
			completed++
			if h.Name != "Meditate 10 min" {
				t.Errorf("completed habit = %q, want Meditate 10 min", h.Name)
			}
		}
	}
	if completed != 1 {
		t.Fatalf("completed habits = %d, want 1", completed)
	}
	if l.Today().Points != 15 {
		t.Fatalf("Today = %d, want 15", l.Today().Points)
	}
}

func TestLoadFrom_CustomSeedReplacesSamples(t *testing.T) {
	t.Setenv("HABITGAME_THEME", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[seed]
balance = 10

[[seed.habits]]
name = "A"
points = 1

[[seed.habits]]
name = "B"
points = 2

[[seed.habits]]
name = "C"
points = 3

[[seed.rewards]]
name = "R"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if len(cfg.Seed.Habits) != 3 {
		t.Fatalf("len(Habits) = %d, want 3", len(cfg.Seed.Habits))
	}
	for i, h := range cfg.Seed.Habits {
		if h.Completed {
			t.Errorf("habit[%d] %q Completed = true, want false", i, h.Name)
		}
	}
	if len(cfg.Seed.Rewards) != 1 || cfg.Seed.Rewards[0].Cost != 0 {
		t.Fatalf("Rewards = %+v, want one reward with cost 0", cfg.Seed.Rewards)
	}
	// history was not set, so the sample history stays
	if len(cfg.Seed.History) != len(DefaultConfig().Seed.History) {
		t.Fatalf("len(History) = %d, want default %d", len(cfg.Seed.History), len(DefaultConfig().Seed.History))
	}

	l := ledger.New(ledger.Config{}, cfg.LedgerSeed(time.Now(), time.Local))
	if got := len(l.Rewards()); got != 0 {
		t.Fatalf("ledger rewards = %d, want 0 (costless reward skipped)", got)
	}
	for _, h := range l.Habits() {
		if h.CompletedToday {
			t.Fatalf("habit %q CompletedToday = true, want false", h.Name)
		}
	}
}

func TestLoadFrom_EmptySeedListIsKept(t *testing.T) {
	t.Setenv("HABITGAME_THEME", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[seed]\nrewards = []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if len(cfg.Seed.Rewards) != 0 {
		t.Fatalf("len(Rewards) = %d, want 0", len(cfg.Seed.Rewards))
	}
	if len(cfg.Seed.Habits) != len(DefaultConfig().Seed.Habits) {
		t.Fatalf("len(Habits) = %d, want defaults", len(cfg.Seed.Habits))
	}
}
