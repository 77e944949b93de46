package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozdmrel/studyquest/internal/quiz"
	"github.com/ozdmrel/studyquest/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	focusMinutes   *string
	breakMinutes   *string
	soundOn        *string
	notifications  *string
	defaultSubject *string
}

type settingsDataMsg struct {
	settings []store.Setting
}

// settingsSavedMsg lets the rest of the app react to changed values, the
// timer in particular picks up new segment lengths.
type settingsSavedMsg struct{}

func newSettingsModel(s *store.Store) settingsModel {
	fm, bm, so, no, ds := "", "", "", "", ""
	return settingsModel{
		store:          s,
		focusMinutes:   &fm,
		breakMinutes:   &bm,
		soundOn:        &so,
		notifications:  &no,
		defaultSubject: &ds,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.focusMinutes = s.getVal("focus_minutes", "25")
	*s.breakMinutes = s.getVal("break_minutes", "5")
	*s.soundOn = s.getVal("sound", "on")
	*s.notifications = s.getVal("notifications", "off")
	*s.defaultSubject = s.getVal("default_subject", "General")

	subjectOpts := []huh.Option[string]{huh.NewOption("General", "General")}
	for _, subj := range quiz.Subjects() {
		subjectOpts = append(subjectOpts, huh.NewOption(subj, subj))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus segment (min)").Value(s.focusMinutes),
			huh.NewInput().Title("Break segment (min)").Value(s.breakMinutes),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Completion sound").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.soundOn),
			huh.NewSelect[string]().Title("Study reminders").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.notifications),
			huh.NewSelect[string]().Title("Default subject").
				Options(subjectOpts...).Value(s.defaultSubject),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, tea.Batch(s.refresh(), func() tea.Msg { return settingsSavedMsg{} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	s.store.SetSetting("focus_minutes", *s.focusMinutes)
	s.store.SetSetting("break_minutes", *s.breakMinutes)
	s.store.SetSetting("sound", *s.soundOn)
	s.store.SetSetting("notifications", *s.notifications)
	s.store.SetSetting("default_subject", *s.defaultSubject)
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{title, ""}
	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(20).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "focus_minutes", "break_minutes":
		return v + " min"
	}
	return v
}
