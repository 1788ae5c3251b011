package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/habitgame/internal/config"
	"github.com/theirongolddev/habitgame/internal/model"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
)

type formKind int

const (
	formNone formKind = iota
	formAddHabit
	formAddReward
	formDeleteHabit
	formDeleteReward
	formSetup
)

func (k formKind) title() string {
	switch k {
	case formAddHabit:
		return "New habit"
	case formAddReward:
		return "New reward"
	case formDeleteHabit:
		return "Delete habit"
	case formDeleteReward:
		return "Delete reward"
	case formSetup:
		return "Welcome to habitgame"
	default:
		return ""
	}
}

// formValues holds the fields huh binds to. It lives behind a pointer so
// the bindings survive copies of App.
type formValues struct {
	name    string
	amount  string
	confirm bool
	target  uuid.UUID
	setup   SetupValues
}

// SetupValues are the preferences collected by the setup form.
type SetupValues struct {
	Theme       string
	HistoryDays int
	DailyReset  bool
}

// SetupValuesFrom pre-fills setup values from cfg.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Theme:       cfg.Appearance.Theme,
		HistoryDays: cfg.General.HistoryDays,
		DailyReset:  cfg.General.DailyReset,
	}
}

// Apply copies the collected preferences into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	if theme.Valid(v.Theme) {
		cfg.Appearance.Theme = v.Theme
	}
	if v.HistoryDays > 0 {
		cfg.General.HistoryDays = v.HistoryDays
	}
	cfg.General.DailyReset = v.DailyReset
}

// NewSetupForm builds the first-run setup form bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),

			huh.NewSelect[int]().
				Title("History window").
				Description("Days shown in charts and summaries").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("14 days", 14),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
				).
				Value(&v.HistoryDays),

			huh.NewConfirm().
				Title("Reset habits at midnight?").
				Description("Completed habits become available again each day").
				Affirmative("Yes").
				Negative("No").
				Value(&v.DailyReset),
		),
	).WithShowHelp(true)
}

// formKeyMap lets esc abort an embedded form.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return km
}

func formWidth(termWidth int) int {
	w := termWidth - 12
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

// parseAmount parses a points/cost field.
func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", strings.TrimSpace(s))
	}
	return n, nil
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return model.ErrEmptyName
	}
	return nil
}

func validatePoints(s string) error {
	n, err := parseAmount(s)
	if err != nil {
		return err
	}
	if n <= 0 {
		return model.ErrNonPositivePoints
	}
	return nil
}

func validateCost(s string) error {
	n, err := parseAmount(s)
	if err != nil {
		return err
	}
	if n <= 0 {
		return model.ErrNonPositiveCost
	}
	return nil
}

func (a *App) openForm(kind formKind, vals *formValues, form *huh.Form) tea.Cmd {
	a.formKind = kind
	a.formVals = vals
	a.form = form.WithKeyMap(formKeyMap())
	if a.width > 0 {
		a.form = a.form.WithWidth(formWidth(a.width))
	}
	return a.form.Init()
}

func (a *App) openAddHabitForm() tea.Cmd {
	v := &formValues{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Placeholder("Read 30 pages").
				Value(&v.name).
				Validate(validateName),
			huh.NewInput().
				Title("Points").
				Placeholder("10").
				Value(&v.amount).
				Validate(validatePoints),
		),
	).WithShowHelp(true)
	return a.openForm(formAddHabit, v, form)
}

func (a *App) openAddRewardForm() tea.Cmd {
	v := &formValues{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reward").
				Placeholder("Watch a movie").
				Value(&v.name).
				Validate(validateName),
			huh.NewInput().
				Title("Cost").
				Placeholder("100").
				Value(&v.amount).
				Validate(validateCost),
		),
	).WithShowHelp(true)
	return a.openForm(formAddReward, v, form)
}

func (a *App) openDeleteForm(kind formKind, id uuid.UUID, name string) tea.Cmd {
	v := &formValues{target: id, name: name}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", name)).
				Description("Points already earned stay in your balance.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.confirm),
		),
	)
	return a.openForm(kind, v, form)
}

func (a *App) openSetupForm() tea.Cmd {
	v := &formValues{setup: SetupValuesFrom(a.cfg)}
	return a.openForm(formSetup, v, NewSetupForm(&v.setup))
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.applyForm()
		a.closeForm()
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

func (a *App) closeForm() {
	if a.formKind == formSetup {
		a.needSetup = false
	}
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
}

// applyForm runs the ledger or config change a completed form asked for.
func (a *App) applyForm() {
	v := a.formVals
	switch a.formKind {
	case formAddHabit:
		pts, _ := parseAmount(v.amount)
		if h, ok := a.ledger.AddHabit(v.name, pts); ok {
			a.refresh()
			a.habitCursor = len(a.habits) - 1
			a.setFlash(fmt.Sprintf("Added %q", h.Name), false)
		} else {
			a.setFlash("Habit not added: name and points are required", true)
		}

	case formAddReward:
		cost, _ := parseAmount(v.amount)
		if r, ok := a.ledger.AddReward(v.name, cost); ok {
			a.refresh()
			a.rewardCursor = len(a.rewards) - 1
			a.setFlash(fmt.Sprintf("Added %q", r.Name), false)
		} else {
			a.setFlash("Reward not added: name and cost are required", true)
		}

	case formDeleteHabit:
		if !v.confirm {
			return
		}
		if i := a.ledger.HabitIndex(v.target); i >= 0 {
			a.ledger.DeleteHabits([]int{i})
			a.refresh()
			a.setFlash(fmt.Sprintf("Deleted %q", v.name), false)
		}

	case formDeleteReward:
		if !v.confirm {
			return
		}
		if i := a.ledger.RewardIndex(v.target); i >= 0 {
			a.ledger.DeleteRewards([]int{i})
			a.refresh()
			a.setFlash(fmt.Sprintf("Deleted %q", v.name), false)
		}

	case formSetup:
		v.setup.Apply(&a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.ledger.SetDailyReset(a.cfg.General.DailyReset)
		a.historyDays = a.cfg.General.HistoryDays
		a.refresh()
		a.saveConfig()
	}
}

func (a *App) saveConfig() {
	if err := config.SaveTo(a.configPath, a.cfg); err != nil {
		a.logger.Warn("saving config", "err", err)
		a.settings.saveErr = err
		a.setFlash("Could not save settings", true)
		return
	}
	a.settings.saveErr = nil
}
