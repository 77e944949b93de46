package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/ledger"
	"github.com/ozdmrel/studyquest/internal/mission"
	"github.com/ozdmrel/studyquest/internal/store"
	"github.com/ozdmrel/studyquest/internal/streak"
)

// dashboardModel is the landing view: level card, streak, today's focus
// total, mission checklist and the latest sessions. It reloads its data
// on every refresh message rather than tracking deltas.
type dashboardModel struct {
	store  *store.Store
	core   *app.App
	clk    clock.Clock
	width  int
	height int

	progress   ledger.Record
	streakRec  streak.Record
	missions   mission.Set
	todayFocus int
	recent     []store.StudySession
	loadErr    error
}

func newDashboardModel(s *store.Store, core *app.App, clk clock.Clock) dashboardModel {
	d := dashboardModel{store: s, core: core, clk: clk}
	d.reload()
	return d
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d *dashboardModel) reload() {
	d.loadErr = nil

	progress, err := d.core.Ledger.Current()
	if err != nil {
		d.loadErr = err
		return
	}
	d.progress = progress

	rec, err := d.core.Streak.Load()
	if err != nil {
		d.loadErr = err
		return
	}
	d.streakRec = rec

	focus, err := d.store.GetTodayFocusMinutes(d.clk.Today())
	if err != nil {
		d.loadErr = err
		return
	}
	d.todayFocus = focus

	set, err := d.core.Missions.Current()
	if err != nil {
		d.loadErr = err
		return
	}
	d.missions = set

	sessions, err := d.store.ListStudySessions(5)
	if err != nil {
		d.loadErr = err
		return
	}
	d.recent = sessions
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg.(type) {
	case sessionFinalizedMsg, battleRecordedMsg, missionClaimedMsg, streakRecordedMsg:
		d.reload()
	}
	return d, nil
}

func (d dashboardModel) view() string {
	w := d.width - 4

	if d.loadErr != nil {
		return panelStyle.Width(w).Render(errorStyle.Render(fmt.Sprintf("Error: %v", d.loadErr)))
	}

	sections := []string{
		d.viewLevelCard(w - 6),
		d.viewToday(w - 6),
		d.viewMissions(w - 6),
		d.viewRecent(w - 6),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (d dashboardModel) viewLevelCard(w int) string {
	p := d.progress
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		goldStyle.Bold(true).Render(fmt.Sprintf("Lv.%d %s", p.Level, p.Title)),
		mutedStyle.Render(fmt.Sprintf("  %d XP", p.XP)),
	)

	bar := progressBar(int(ledger.ProgressPercent(p.XP)), 100, 30)
	var next string
	if p.Level < ledger.MaxLevel {
		next = mutedStyle.Render(fmt.Sprintf(" %d/%d to Lv.%d", p.XP, ledger.NextThreshold(p.XP), p.Level+1))
	} else {
		next = goldStyle.Render(" MAX")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, accentStyle.Render(bar)+next, "")
}

func (d dashboardModel) viewToday(w int) string {
	streakLabel := fmt.Sprintf("🔥 %d day streak", d.streakRec.CurrentStreak)
	if d.streakRec.CurrentStreak == 0 {
		streakLabel = "🔥 no streak yet"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		warningStyle.Render(streakLabel),
		mutedStyle.Render(fmt.Sprintf("   best: %d", d.streakRec.LongestStreak)),
		mutedStyle.Render(fmt.Sprintf("   today: %s focus", formatMinutes(d.todayFocus))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, line, "")
}

func (d dashboardModel) viewMissions(w int) string {
	rows := []string{titleStyle.Render("Today's Missions")}
	if len(d.missions.Missions) == 0 {
		rows = append(rows, mutedStyle.Render("  none yet"))
	}
	for _, m := range d.missions.Missions {
		mark := "☐"
		style := normalItemStyle
		switch {
		case m.Claimed:
			mark = "☑"
			style = mutedStyle
		case m.Completed:
			mark = "☑"
			style = successStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("  %s %s %s (%d/%d)",
			mark, m.Type.Icon(), m.Title, m.Current, m.Target)))
	}
	rows = append(rows, "")
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (d dashboardModel) viewRecent(w int) string {
	rows := []string{titleStyle.Render("Recent Sessions")}
	if len(d.recent) == 0 {
		rows = append(rows, mutedStyle.Render("  no sessions recorded"))
	}
	for _, s := range d.recent {
		rows = append(rows, normalItemStyle.Render(fmt.Sprintf("  %s  %-10s %s focus",
			s.Date, s.Subject, formatMinutes(s.FocusMinutes))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
