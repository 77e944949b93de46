package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/export"
	"github.com/ozdmrel/studyquest/internal/notify"
	"github.com/ozdmrel/studyquest/internal/sound"
	"github.com/ozdmrel/studyquest/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	core   *app.App
	clk    clock.Clock
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	missionsDate string

	reminder *notify.Reminder
	notifier *notify.Service

	dashboard dashboardModel
	timer     timerModel
	missions  missionsModel
	battle    battleModel
	stats     statsModel
	settings  settingsModel

	help   help.Model
	status string
}

// statusDispatcher surfaces notifications on the status line. The TUI
// has no desktop notification channel, the footer is the channel.
type statusDispatcher struct{}

func (statusDispatcher) Send(title, body string) error { return nil }

func NewApp(s *store.Store, clk clock.Clock, signal sound.Signal) App {
	h := help.New()
	h.ShowAll = false

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	core := app.New(s, clk, rng)

	// Today's mission set must exist before any screen renders it.
	set, _ := core.EnsureMissions()

	notifier := notify.NewService(statusDispatcher{})
	if v, err := s.GetSetting("notifications"); err == nil && v == "on" {
		notifier.RequestPermission()
	}

	return App{
		store:        s,
		core:         core,
		clk:          clk,
		activeView:   viewDashboard,
		missionsDate: set.GeneratedDate,
		reminder:     notify.NewReminder(notifier, clk, notify.DefaultReminderInterval),
		notifier:     notifier,
		dashboard:    newDashboardModel(s, core, clk),
		timer:        newTimerModel(s, core, clk, signal),
		missions:     newMissionsModel(core),
		battle:       newBattleModel(core, clk, rng),
		stats:        newStatsModel(s, core, clk),
		settings:     newSettingsModel(s),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.settings.refresh(),
		tickCmd(),
		reminderTickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func reminderTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return reminderTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.timer.setSize(a.width, contentHeight)
		a.missions.setSize(a.width, contentHeight)
		a.battle.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			// An open timer session is committed, not dropped.
			if cmd := a.timer.dispose(); cmd != nil {
				return a, tea.Sequence(cmd, tea.Quit)
			}
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			a.dashboard.reload()
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewMissions
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewBattle
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewStats
			a.stats.reload()
			return a, nil
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 6
			return a, nil
		}

	case tickMsg:
		var cmds []tea.Cmd
		cmds = append(cmds, tickCmd())

		// Day rollover regenerates missions mid-run.
		if today := a.clk.Today(); today != a.missionsDate {
			a.missionsDate = today
			if set, err := a.core.EnsureMissions(); err == nil {
				a.missions.set = set
				a.dashboard.reload()
			}
		}

		// The engine only ticks while running, but the message always
		// reaches the timer so a flip to break is rendered promptly.
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case reminderTickMsg:
		cmds := []tea.Cmd{reminderTickCmd()}
		if cmd := a.maybeRemind(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case settingsSavedMsg:
		a.timer.applySettings()
		if v, err := a.store.GetSetting("notifications"); err == nil && v == "on" {
			a.notifier.RequestPermission()
		} else {
			a.notifier.Revoke()
		}
		a.status = "Settings saved"
		return a, nil

	case sessionFinalizedMsg:
		if msg.result != nil {
			a.status = fmt.Sprintf("Session saved: %s focus, +%d XP",
				formatMinutes(msg.result.Session.FocusMinutes), msg.result.XPEarned)
		}
		return a.broadcast(msg)

	case battleRecordedMsg:
		if msg.result != nil {
			if msg.result.Battle.IsVictory {
				a.status = fmt.Sprintf("Victory! +%d XP", msg.result.Battle.XPEarned)
			} else {
				a.status = fmt.Sprintf("Defeat. +%d XP", msg.result.Battle.XPEarned)
			}
		}
		return a.broadcast(msg)

	case missionClaimedMsg:
		if msg.result != nil {
			a.status = fmt.Sprintf("Mission claimed: +%d XP", msg.result.Reward)
		}
		return a.broadcast(msg)

	case streakRecordedMsg:
		if msg.result != nil {
			a.status = streakToast(msg.result)
		}
		return a.broadcast(msg)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// broadcast routes a domain event to every screen that renders derived
// state, then returns any follow-up commands they produce.
func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.dashboard, cmd = a.dashboard.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.missions, cmd = a.missions.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.battle, cmd = a.battle.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.stats, cmd = a.stats.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) maybeRemind() tea.Cmd {
	focus, err := a.store.GetTodayFocusMinutes(a.clk.Today())
	if err != nil {
		return nil
	}
	studiedToday := focus > 0 || a.timer.sessionOpen()
	if !a.reminder.MaybeRemind(studiedToday) {
		return nil
	}
	return func() tea.Msg {
		return statusMsg{text: "🔔 No study session yet today. A short focus block keeps the streak alive."}
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewMissions:
		a.missions, cmd = a.missions.update(msg)
	case viewBattle:
		a.battle, cmd = a.battle.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewBattle:
		return a.battle.formActive()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTimer:
		content = a.timer.view()
	case viewMissions:
		content = a.missions.view()
	case viewBattle:
		content = a.battle.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studyquest")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Live timer indicator regardless of the active tab.
	timerInfo := ""
	if a.timer.sessionOpen() {
		e := a.timer.engine
		display := " ● " + formatCountdown(e.RemainingSeconds())
		switch {
		case e.Paused():
			timerInfo = warningStyle.Render(" ⏸ " + formatCountdown(e.RemainingSeconds()))
		case e.Running():
			timerInfo = successStyle.Render(display)
		default:
			timerInfo = mutedStyle.Render(display)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"Sessions CSV", "Battles CSV", "Everything JSON"}
	rows := []string{title, ""}
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 2 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		sessions, err := a.store.ListStudySessions(0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		battles, err := a.core.Battles.History(0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := a.clk.Today()

		var path string
		switch format {
		case 0:
			path = filepath.Join(home, fmt.Sprintf("studyquest-sessions-%s.csv", dateStr))
			err = export.SessionsToCSV(sessions, path)
		case 1:
			path = filepath.Join(home, fmt.Sprintf("studyquest-battles-%s.csv", dateStr))
			err = export.BattlesToCSV(battles, path)
		default:
			path = filepath.Join(home, fmt.Sprintf("studyquest-export-%s.json", dateStr))
			err = export.ToJSON(sessions, battles, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}
