package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/battle"
	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/ledger"
	"github.com/ozdmrel/studyquest/internal/store"
	"github.com/ozdmrel/studyquest/internal/streak"
)

// statsModel charts the last seven days of focus time and shows lifetime
// battle numbers plus milestone progress.
type statsModel struct {
	store  *store.Store
	core   *app.App
	clk    clock.Clock
	width  int
	height int

	daily      []store.DailyStudy
	progress   ledger.Record
	milestones []streak.MilestoneStatus
	battles    []battle.Record
	loadErr    error

	chart barchart.Model
}

func newStatsModel(s *store.Store, core *app.App, clk clock.Clock) statsModel {
	m := statsModel{
		store: s,
		core:  core,
		clk:   clk,
		chart: barchart.New(60, 10),
	}
	m.reload()
	return m
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.rebuildChart()
}

func (s *statsModel) reload() {
	s.loadErr = nil

	to := s.clk.Now()
	from := to.AddDate(0, 0, -6)
	daily, err := s.store.GetDailyStudy(from.Format(clock.DayFormat), to.Format(clock.DayFormat))
	if err != nil {
		s.loadErr = err
		return
	}
	s.daily = daily

	progress, err := s.core.Ledger.Current()
	if err != nil {
		s.loadErr = err
		return
	}
	s.progress = progress

	milestones, err := s.core.Streak.MilestoneStatuses()
	if err != nil {
		s.loadErr = err
		return
	}
	s.milestones = milestones

	battles, err := s.core.Battles.History(10)
	if err != nil {
		s.loadErr = err
		return
	}
	s.battles = battles

	s.rebuildChart()
}

func (s *statsModel) rebuildChart() {
	chartWidth := s.width - 10
	if chartWidth < 30 {
		chartWidth = 30
	}
	if chartWidth > 70 {
		chartWidth = 70
	}
	s.chart = barchart.New(chartWidth, 10)

	byDate := make(map[string]store.DailyStudy, len(s.daily))
	for _, d := range s.daily {
		byDate[d.Date] = d
	}

	focusStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	breakStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	end := s.clk.Now()
	for d := end.AddDate(0, 0, -6); !d.After(end); d = d.AddDate(0, 0, 1) {
		day := byDate[d.Format(clock.DayFormat)]
		values := []barchart.BarValue{
			{Name: "focus", Value: float64(day.FocusMinutes), Style: focusStyle},
			{Name: "break", Value: float64(day.BreakMinutes), Style: breakStyle},
		}
		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon"),
			Values: values,
		})
	}
	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg.(type) {
	case sessionFinalizedMsg, battleRecordedMsg, missionClaimedMsg, streakRecordedMsg:
		s.reload()
	}
	return s, nil
}

func (s statsModel) view() string {
	w := s.width - 4

	if s.loadErr != nil {
		return panelStyle.Width(w).Render(errorStyle.Render(fmt.Sprintf("Error: %v", s.loadErr)))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistics"), "  ",
		mutedStyle.Render("last 7 days, minutes per day"),
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		s.chart.View(),
		"",
		s.renderBattleSummary(),
		"",
		s.renderMilestones(),
		"",
		mutedStyle.Render("  e: export data"),
	))
}

func (s statsModel) renderBattleSummary() string {
	p := s.progress
	winRate := 0.0
	if p.TotalBattles > 0 {
		winRate = float64(p.TotalBattleWins) / float64(p.TotalBattles) * 100
	}
	accuracy := 0.0
	if p.TotalQuestionsAnswered > 0 {
		accuracy = float64(p.TotalCorrectAnswers) / float64(p.TotalQuestionsAnswered) * 100
	}

	rows := []string{
		titleStyle.Render("Battles"),
		normalItemStyle.Render(fmt.Sprintf("  %d fought, %d won (%.0f%%)  accuracy %.0f%%",
			p.TotalBattles, p.TotalBattleWins, winRate, accuracy)),
	}

	for i, b := range s.battles {
		if i >= 5 {
			break
		}
		verdict := errorStyle.Render("L")
		if b.IsVictory {
			verdict = successStyle.Render("W")
		}
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %s  %-10s %d/%d  ", b.Date, b.Subject, b.CorrectAnswers, b.TotalQuestions))+verdict)
	}
	return strings.Join(rows, "\n")
}

func (s statsModel) renderMilestones() string {
	rows := []string{titleStyle.Render("Milestones")}
	for _, ms := range s.milestones {
		label := fmt.Sprintf("  %s %-16s %d days", ms.Milestone.Icon(), ms.Milestone.AchievementName(), int(ms.Milestone))
		if ms.Unlocked {
			rows = append(rows, goldStyle.Render(label+"  unlocked"))
		} else {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s  %3.0f%%", label, ms.ProgressPercent)))
		}
	}
	return strings.Join(rows, "\n")
}
