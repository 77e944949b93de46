package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/quiz"
	"github.com/ozdmrel/studyquest/internal/sound"
	"github.com/ozdmrel/studyquest/internal/store"
	"github.com/ozdmrel/studyquest/internal/timer"
)

// timerModel hosts one timer.Engine per study session. The engine lives
// from subject pick to finalize/discard and survives tab switches; the
// app's 1 Hz tick only reaches it while it is running.
type timerModel struct {
	store  *store.Store
	core   *app.App
	clk    clock.Clock
	signal sound.Signal
	width  int
	height int

	engine  *timer.Engine
	subject string

	picking      bool
	subjects     []string
	pickerCursor int

	finishing    bool
	finishCursor int
}

func newTimerModel(s *store.Store, core *app.App, clk clock.Clock, signal sound.Signal) timerModel {
	return timerModel{
		store:  s,
		core:   core,
		clk:    clk,
		signal: signal,
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) sessionOpen() bool { return t.engine != nil }

func (t timerModel) running() bool { return t.engine != nil && t.engine.Running() }

// settingLengths reads the configured focus/break lengths in minutes.
func (t timerModel) settingLengths() (int, int) {
	return t.store.GetSettingInt("focus_minutes", 25), t.store.GetSettingInt("break_minutes", 5)
}

// currentSignal honors the sound setting at session start. The injected
// signal is the ceiling; "off" always silences.
func (t timerModel) currentSignal() sound.Signal {
	if v, err := t.store.GetSetting("sound"); err == nil && v == "off" {
		return sound.Silent{}
	}
	return t.signal
}

// applySettings pushes freshly saved lengths into an open engine; while
// idle or paused the countdown snaps immediately, mid-segment the change
// waits for the next transition.
func (t *timerModel) applySettings() {
	if t.engine == nil {
		return
	}
	focus, brk := t.settingLengths()
	t.engine.SetLengths(focus, brk)
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if t.running() {
			t.engine.Tick()
		}
		return t, nil

	case tea.KeyMsg:
		if t.picking {
			return t.updatePicker(msg)
		}
		if t.finishing {
			return t.updateFinishMenu(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if t.engine == nil {
				t.picking = true
				t.pickerCursor = 0
				t.subjects = t.subjectChoices()
				return t, nil
			}
			t.engine.Start()
			return t, nil
		case key.Matches(msg, keys.Pause):
			if t.engine == nil {
				return t, nil
			}
			if t.engine.Paused() {
				t.engine.Resume()
			} else if t.engine.Running() {
				t.engine.Pause()
			}
			return t, nil
		case key.Matches(msg, keys.Reset):
			if t.engine != nil {
				t.engine.ResetCurrentSegment()
			}
			return t, nil
		case key.Matches(msg, keys.Stop):
			if t.engine != nil {
				t.finishing = true
				t.finishCursor = 0
			}
			return t, nil
		}
	}
	return t, nil
}

func (t timerModel) subjectChoices() []string {
	subjects := quiz.Subjects()
	if def, err := t.store.GetSetting("default_subject"); err == nil && def != "" {
		for _, s := range subjects {
			if s == def {
				return subjects
			}
		}
		subjects = append([]string{def}, subjects...)
	}
	return subjects
}

func (t timerModel) updatePicker(msg tea.KeyMsg) (timerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.pickerCursor > 0 {
			t.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if t.pickerCursor < len(t.subjects)-1 {
			t.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		t.picking = false
		t.subject = t.subjects[t.pickerCursor]
		focus, brk := t.settingLengths()
		t.engine = timer.New(t.clk, t.currentSignal(), focus, brk)
		t.engine.Start()
		return t, func() tea.Msg {
			return statusMsg{text: "Focus session started: " + t.subject}
		}
	case key.Matches(msg, keys.Back):
		t.picking = false
	}
	return t, nil
}

// finishOptions lists the valid finalize paths. Whole-segments-only is
// suppressed until a full focus segment has completed.
func (t timerModel) finishOptions() []string {
	opts := []string{"Finish (count partial segment)"}
	if t.engine.CompletedFocusSegments() > 0 {
		opts = append(opts, "Finish (whole segments only)")
	}
	return append(opts, "Discard session")
}

func (t timerModel) updateFinishMenu(msg tea.KeyMsg) (timerModel, tea.Cmd) {
	opts := t.finishOptions()
	switch {
	case key.Matches(msg, keys.Up):
		if t.finishCursor > 0 {
			t.finishCursor--
		}
	case key.Matches(msg, keys.Down):
		if t.finishCursor < len(opts)-1 {
			t.finishCursor++
		}
	case key.Matches(msg, keys.Enter):
		t.finishing = false
		choice := opts[t.finishCursor]
		engine, subject := t.engine, t.subject
		t.engine = nil
		t.subject = ""

		switch choice {
		case "Discard session":
			return t, func() tea.Msg {
				return statusMsg{text: "Session discarded"}
			}
		case "Finish (whole segments only)":
			sum := engine.FinalizeSegmentsOnly()
			return t, t.finalizeCmd(subject, sum)
		default:
			sum := engine.FinalizeComplete()
			return t, t.finalizeCmd(subject, sum)
		}
	case key.Matches(msg, keys.Back):
		t.finishing = false
	}
	return t, nil
}

func (t timerModel) finalizeCmd(subject string, sum timer.Summary) tea.Cmd {
	return func() tea.Msg {
		res, err := t.core.FinalizeSession(subject, sum)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return sessionFinalizedMsg{result: res}
	}
}

// dispose finalizes an open session on app teardown. Sessions with at
// least one whole focus segment are committed; anything less is dropped.
func (t *timerModel) dispose() tea.Cmd {
	if t.engine == nil {
		return nil
	}
	engine, subject := t.engine, t.subject
	t.engine = nil
	t.subject = ""
	sum, ok := engine.Dispose()
	if !ok {
		return nil
	}
	return t.finalizeCmd(subject, sum)
}

func (t timerModel) view() string {
	w := t.width - 4

	title := titleStyle.Render("Focus Timer")

	if t.picking {
		return t.viewPicker(w, title)
	}

	var timeDisplay, phaseLabel, counters, controls string

	switch {
	case t.engine == nil:
		focus, _ := t.settingLengths()
		timeDisplay = timerStyle.Width(w - 6).Render(formatCountdown(focus * 60))
		phaseLabel = mutedStyle.Render("Ready to focus")
		controls = mutedStyle.Render("s: start  q: quit")

	default:
		e := t.engine
		display := formatCountdown(e.RemainingSeconds())
		switch {
		case e.Paused():
			timeDisplay = warningStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(display)
			phaseLabel = warningStyle.Bold(true).Render("PAUSED")
		case e.Mode() == timer.ModeBreak:
			timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(display)
			phaseLabel = successStyle.Bold(true).Render("BREAK")
		default:
			timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(display)
			phaseLabel = accentStyle.Bold(true).Render("FOCUS: " + t.subject)
		}
		counters = mutedStyle.Render(fmt.Sprintf(
			"segments: %d   break: %dm   paused: %dm",
			e.CompletedFocusSegments(), e.TotalBreakMinutes(), e.TotalPausedSeconds()/60,
		))
		controls = mutedStyle.Render("space: pause/resume  r: restart segment  x: finish")
	}

	rows := []string{title, "", timeDisplay, phaseLabel}
	if counters != "" {
		rows = append(rows, "", counters)
	}

	if t.finishing {
		rows = append(rows, "", t.viewFinishMenu())
	} else {
		rows = append(rows, "", controls)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (t timerModel) viewPicker(w int, title string) string {
	rows := []string{title, "", mutedStyle.Render("Pick a subject")}
	for i, s := range t.subjects {
		cursor := "  "
		style := normalItemStyle
		if i == t.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+s))
	}
	rows = append(rows, "", mutedStyle.Render("enter: start  esc: cancel"))
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (t timerModel) viewFinishMenu() string {
	rows := []string{titleStyle.Render("Finish session?")}
	for i, opt := range t.finishOptions() {
		cursor := "  "
		style := normalItemStyle
		if i == t.finishCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+opt))
	}
	rows = append(rows, mutedStyle.Render("enter: confirm  esc: keep going"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
