package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/habitgame/internal/cli"
	"github.com/theirongolddev/habitgame/internal/config"
	"github.com/theirongolddev/habitgame/internal/tui/components"
	"github.com/theirongolddev/habitgame/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldDailyReset
	settingsFieldHistoryDays
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 3
	ti.Width = 10
	return ti
}

// updateSettings handles keys on the Settings tab when not editing.
func (a *App) updateSettings(key string) (tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "enter", " ":
		return a.settingsActivate(), true
	default:
		return nil, false
	}
	return nil, true
}

// settingsActivate cycles or toggles the selected field, or opens the
// text input for numeric fields.
func (a *App) settingsActivate() tea.Cmd {
	a.settings.saved = false

	switch a.settings.cursor {
	case settingsFieldTheme:
		a.cfg.Appearance.Theme = theme.Next(a.cfg.Appearance.Theme)
		theme.SetActive(a.cfg.Appearance.Theme)
	case settingsFieldDailyReset:
		a.cfg.General.DailyReset = !a.cfg.General.DailyReset
		a.ledger.SetDailyReset(a.cfg.General.DailyReset)
		a.ledger.ResetDay()
		a.refresh()
	case settingsFieldHistoryDays:
		ti := newSettingsInput()
		ti.Placeholder = "14"
		ti.SetValue(strconv.Itoa(a.historyDays))
		ti.Focus()
		a.settings.input = ti
		a.settings.editing = true
		return ti.Cursor.BlinkCmd()
	}

	a.saveConfig()
	a.settings.saved = a.settings.saveErr == nil
	return nil
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldHistoryDays:
		d, err := strconv.Atoi(val)
		if err != nil || d != config.ClampHistoryDays(d) {
			a.setFlash(fmt.Sprintf("History days must be %d-%d, got %q",
				config.MinHistoryDays, config.MaxHistoryDays, val), true)
			return
		}
		a.cfg.General.HistoryDays = d
		a.historyDays = d
		a.refresh()
	}

	a.saveConfig()
	a.settings.saved = a.settings.saveErr == nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct{ label, value string }{
		{"Theme", a.cfg.Appearance.Theme},
		{"Daily Reset", onOff(a.cfg.General.DailyReset)},
		{"History Days", strconv.Itoa(a.historyDays)},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			used := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if pad := innerW - used; pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	cfgPath := a.configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(cfgPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Habits:       ") + valueStyle.Render(cli.FormatNumber(int64(len(a.habits)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Rewards:      ") + valueStyle.Render(cli.FormatNumber(int64(len(a.rewards)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Events:       ") + valueStyle.Render(cli.FormatNumber(int64(len(a.events)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Ledger state lives in memory; restarting starts again from the seed."))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Session", infoBody.String(), cw))
	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
