package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/mission"
	"github.com/ozdmrel/studyquest/internal/streak"
)

// missionsModel lists today's missions and handles claiming. Claiming
// the last mission of the day kicks off the streak sync, so the daily
// completion lands the moment the set is fully claimed.
type missionsModel struct {
	core   *app.App
	width  int
	height int

	set    mission.Set
	cursor int
}

func newMissionsModel(core *app.App) missionsModel {
	m := missionsModel{core: core}
	if set, err := core.Missions.Current(); err == nil {
		m.set = set
	}
	return m
}

func (m *missionsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m missionsModel) update(msg tea.Msg) (missionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionFinalizedMsg:
		if msg.result != nil {
			m.set = msg.result.Missions
		}
		return m, nil
	case battleRecordedMsg:
		if msg.result != nil {
			m.set = msg.result.Missions
		}
		return m, nil
	case missionClaimedMsg:
		if msg.result != nil {
			m.set = msg.result.Missions
		}
		return m, m.syncStreakCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.set.Missions)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Claim), key.Matches(msg, keys.Enter):
			return m, m.claimCmd()
		}
	}
	return m, nil
}

func (m missionsModel) claimCmd() tea.Cmd {
	if m.cursor >= len(m.set.Missions) {
		return nil
	}
	target := m.set.Missions[m.cursor]
	if !target.Completed || target.Claimed {
		return func() tea.Msg {
			return statusMsg{text: "Nothing to claim there", isError: true}
		}
	}
	return func() tea.Msg {
		res, err := m.core.ClaimMission(target.ID)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return missionClaimedMsg{result: res}
	}
}

// syncStreakCmd asks the orchestrator whether today now counts toward
// the streak. A nil result means the day is not complete yet.
func (m missionsModel) syncStreakCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.core.SyncStreak()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if res == nil {
			return nil
		}
		return streakRecordedMsg{result: res}
	}
}

func (m missionsModel) view() string {
	w := m.width - 4

	rows := []string{titleStyle.Render("Daily Missions"), ""}

	if len(m.set.Missions) == 0 {
		rows = append(rows, mutedStyle.Render("No missions generated yet."))
	}

	for i, ms := range m.set.Missions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var status string
		switch {
		case ms.Claimed:
			status = mutedStyle.Render("claimed")
		case ms.Completed:
			status = goldStyle.Render(fmt.Sprintf("claim +%d XP", ms.XP))
		default:
			status = mutedStyle.Render(fmt.Sprintf("+%d XP", ms.XP))
		}

		title := fmt.Sprintf("%s%s %s", cursor, ms.Type.Icon(), ms.Title)
		if i == m.cursor {
			title = selectedItemStyle.Render(title)
		} else if ms.Claimed {
			title = mutedStyle.Render(title)
		} else {
			title = normalItemStyle.Render(title)
		}

		bar := progressBar(ms.Current, ms.Target, 20)
		detail := fmt.Sprintf("    %s %d/%d  %s", bar, ms.Current, ms.Target, status)
		rows = append(rows, title, mutedStyle.Render(detail), "")
	}

	if m.set.AllClaimed() {
		rows = append(rows, successStyle.Render("All missions claimed. Today counts!"))
	}

	rows = append(rows, "", mutedStyle.Render("c/enter: claim  ↑/↓: move"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func streakToast(res *streak.Result) string {
	if res == nil {
		return ""
	}
	text := fmt.Sprintf("🔥 Streak: %d days", res.Record.CurrentStreak)
	if res.IsNewRecord {
		text += " (new record!)"
	}
	if res.Milestone != 0 {
		text += fmt.Sprintf("  %s %s unlocked!", res.Milestone.Icon(), res.Milestone.AchievementName())
	}
	return text
}
