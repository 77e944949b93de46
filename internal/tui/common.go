package tui

import (
	"fmt"
	"time"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/streak"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTimer
	viewMissions
	viewBattle
	viewStats
	viewSettings
)

var viewNames = []string{"Dashboard", "Timer", "Missions", "Battle", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type reminderTickMsg time.Time

type sessionFinalizedMsg struct {
	result *app.SessionResult
}

type battleRecordedMsg struct {
	result *app.BattleResult
}

type missionClaimedMsg struct {
	result *app.ClaimResult
}

type streakRecordedMsg struct {
	result *streak.Result
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	m := totalSeconds / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func progressBar(current, target, width int) string {
	if target <= 0 || width <= 0 {
		return ""
	}
	filled := current * width / target
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
