// Package tui provides the interactive Bubble Tea dashboard for habitgame.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/config"
	"github.com/theirongolddev/habitgame/internal/ledger"
	"github.com/theirongolddev/habitgame/internal/model"
	"github.com/theirongolddev/habitgame/internal/pipeline"
	"github.com/theirongolddev/habitgame/internal/tui/components"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabHabits = iota
	tabRewards
	tabHistory
	tabActivity
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5

	flashDuration = 4 * time.Second
	tickInterval  = 30 * time.Second
)

// Options configures the dashboard.
type Options struct {
	Ledger      *ledger.Ledger
	Config      config.Config
	ConfigPath  string // empty means the default config path
	HistoryDays int    // 0 means Config.General.HistoryDays
	NeedSetup   bool   // show the first-run setup form
	Logger      *slog.Logger
}

// ledgerEventMsg carries one ledger change into the update loop.
type ledgerEventMsg struct {
	ev ledger.Event
}

// ledgerClosedMsg is sent once the ledger subscription is closed.
type ledgerClosedMsg struct{}

type tickMsg time.Time

// App is the root Bubble Tea model.
type App struct {
	ledger     *ledger.Ledger
	cfg        config.Config
	configPath string
	logger     *slog.Logger

	// Ledger snapshot, refreshed after every change
	now         time.Time
	habits      []model.Habit
	rewards     []model.Reward
	balance     int
	spent       int
	events      []ledger.Event
	days        []model.DailyPoints
	weeks       []model.WeeklyPoints
	summary     model.HistorySummary
	prevSummary model.HistorySummary // same-length window right before
	historyDays int

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	habitCursor    int
	rewardCursor   int
	activityOffset int
	settings       settingsState

	// Modal huh form (add, delete confirm, first-run setup)
	form      *huh.Form
	formKind  formKind
	formVals  *formValues
	needSetup bool

	flash      components.Flash
	flashUntil time.Time

	sub         <-chan ledger.Event
	unsubscribe func()
}

// NewApp creates a new TUI app model subscribed to the ledger. Call Close
// when the program exits.
func NewApp(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	days := opts.HistoryDays
	if days <= 0 {
		days = opts.Config.General.HistoryDays
	}
	if days <= 0 {
		days = config.DefaultConfig().General.HistoryDays
	}
	days = config.ClampHistoryDays(days)

	sub, unsubscribe := opts.Ledger.Subscribe(64)

	a := App{
		ledger:      opts.Ledger,
		cfg:         opts.Config,
		configPath:  opts.ConfigPath,
		logger:      opts.Logger,
		historyDays: days,
		needSetup:   opts.NeedSetup,
		sub:         sub,
		unsubscribe: unsubscribe,
	}
	if a.needSetup {
		a.openSetupForm()
	}
	a.refresh()
	return a
}

// Close releases the ledger subscription.
func (a App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		waitForLedgerEvent(a.sub),
		tickCmd(),
	}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// refresh re-reads ledger state and recomputes derived stats.
func (a *App) refresh() {
	l := a.ledger
	loc := l.Location()

	a.now = l.Now()
	a.habits = l.Habits()
	a.rewards = l.Rewards()
	a.balance = l.Balance()
	a.spent = l.Spent()
	a.events = l.Events()

	history := l.History()
	since, until := pipeline.Window(a.now, a.historyDays, loc)
	a.days = pipeline.FillDays(history, since, until, loc)
	a.summary = pipeline.Summarize(history, a.balance, since, until, a.now, loc)
	a.prevSummary = pipeline.Summarize(history, a.balance, since.AddDate(0, 0, -a.historyDays), since, a.now, loc)
	a.weeks = pipeline.AggregateWeeks(pipeline.FilterByTime(history, since, until), loc)

	a.habitCursor = clampCursor(a.habitCursor, len(a.habits))
	a.rewardCursor = clampCursor(a.rewardCursor, len(a.rewards))
	a.activityOffset = clampCursor(a.activityOffset, len(a.events))
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (a *App) setFlash(text string, warn bool) {
	a.flash = components.Flash{Text: text, Warn: warn}
	a.flashUntil = time.Now().Add(flashDuration)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(formWidth(msg.Width))
		}
		return a, nil

	case ledgerEventMsg:
		a.logger.Debug("ledger event", "type", msg.ev.Type, "id", msg.ev.ID)
		a.refresh()
		return a, waitForLedgerEvent(a.sub)

	case ledgerClosedMsg:
		return a, nil

	case tickMsg:
		// Picks up the day boundary while the dashboard sits idle.
		a.ledger.ResetDay()
		if !a.flashUntil.IsZero() && time.Now().After(a.flashUntil) {
			a.flash = components.Flash{}
			a.flashUntil = time.Time{}
		}
		a.refresh()
		return a, tickCmd()

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y <= 1 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			return a.updateForm(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		var (
			cmd     tea.Cmd
			handled bool
		)
		switch a.activeTab {
		case tabHabits:
			cmd, handled = a.updateHabits(key)
		case tabRewards:
			cmd, handled = a.updateRewards(key)
		case tabHistory:
			handled = a.updateHistory(key)
		case tabActivity:
			handled = a.updateActivity(key)
		case tabSettings:
			cmd, handled = a.updateSettings(key)
		}
		if handled {
			return a, cmd
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil
	}

	// Cursor blinks and other internal messages for the active form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabHabits:
		a.habitCursor = clampCursor(a.habitCursor+delta, len(a.habits))
	case tabRewards:
		a.rewardCursor = clampCursor(a.rewardCursor+delta, len(a.rewards))
	case tabActivity:
		a.activityOffset = clampCursor(a.activityOffset+delta, len(a.events))
	case tabSettings:
		a.settings.cursor = clampCursor(a.settings.cursor+delta, settingsFieldCount)
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  habitgame needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	body := titleStyle.Render("◈ "+a.formKind.title()) + "\n\n" + a.form.View()
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"1-5", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move selection"},
		}},
		{"Habits & Rewards", [][2]string{
			{"space", "Toggle habit done"},
			{"enter", "Toggle habit / Buy reward"},
			{"a", "Add"},
			{"d", "Delete selected"},
		}},
		{"History", [][2]string{
			{"+ -", "Widen / narrow the window"},
		}},
		{"General", [][2]string{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, kb := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", kb[0])),
				descStyle.Render(kb[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, cli.FormatPoints(a.balance), a.flash)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabHabits:
		content = a.renderHabitsTab(cw)
	case tabRewards:
		content = a.renderRewardsTab(cw)
	case tabHistory:
		content = a.renderHistoryTab(cw)
	case tabActivity:
		content = a.renderActivityTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

// waitForLedgerEvent blocks until the next ledger event arrives.
func waitForLedgerEvent(sub <-chan ledger.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub
		if !ok {
			return ledgerClosedMsg{}
		}
		return ledgerEventMsg{ev: ev}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}
