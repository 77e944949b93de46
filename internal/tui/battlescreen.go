package tui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/battle"
	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/quiz"
)

const battleRoundSize = 5

type battlePhase int

const (
	battleIdle battlePhase = iota
	battleSetup
	battleAsking
	battleDone
)

const (
	battleModeStandard = "standard"
	battleModeReview   = "review"
)

// battleModel runs a quiz battle from setup form to recorded result.
type battleModel struct {
	core   *app.App
	clk    clock.Clock
	rng    *rand.Rand
	width  int
	height int

	phase battlePhase
	form  *huh.Form

	subject string
	mode    string

	questions []quiz.Question
	index     int
	choice    int
	correct   int
	wrongIDs  []string
	startedAt time.Time

	result *app.BattleResult
}

func newBattleModel(core *app.App, clk clock.Clock, rng *rand.Rand) battleModel {
	return battleModel{core: core, clk: clk, rng: rng}
}

func (b *battleModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

func (b battleModel) formActive() bool { return b.phase == battleSetup }

func (b *battleModel) newSetupForm() *huh.Form {
	subjectOpts := make([]huh.Option[string], 0, len(quiz.Subjects()))
	for _, s := range quiz.Subjects() {
		subjectOpts = append(subjectOpts, huh.NewOption(s, s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(subjectOpts...).
				Value(&b.subject),
			huh.NewSelect[string]().
				Title("Mode").
				Options(
					huh.NewOption("Standard round", battleModeStandard),
					huh.NewOption("Review past mistakes", battleModeReview),
				).
				Value(&b.mode),
		),
	).WithShowHelp(false)
}

func (b battleModel) update(msg tea.Msg) (battleModel, tea.Cmd) {
	switch b.phase {
	case battleSetup:
		return b.updateSetup(msg)
	case battleAsking:
		return b.updateAsking(msg)
	}

	switch msg := msg.(type) {
	case battleRecordedMsg:
		b.result = msg.result
		return b, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New):
			b.phase = battleSetup
			b.subject = ""
			b.mode = battleModeStandard
			b.form = b.newSetupForm()
			return b, b.form.Init()
		case key.Matches(msg, keys.Back):
			if b.phase == battleDone {
				b.phase = battleIdle
				b.result = nil
			}
		}
	}
	return b, nil
}

func (b battleModel) updateSetup(msg tea.Msg) (battleModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Back) {
		b.phase = battleIdle
		b.form = nil
		return b, nil
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.form = nil
		return b.beginRound()
	}
	return b, cmd
}

// beginRound draws the question set for the chosen subject and mode.
// Review mode replays every question the player has ever missed.
func (b battleModel) beginRound() (battleModel, tea.Cmd) {
	var qs []quiz.Question
	switch b.mode {
	case battleModeReview:
		ids, err := b.core.Battles.AggregatedWrongQuestionIDs()
		if err != nil {
			b.phase = battleIdle
			return b, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		qs = quiz.ByIDs(ids)
	default:
		qs = quiz.DrawRound(b.rng, b.subject, battleRoundSize)
	}

	if len(qs) == 0 {
		b.phase = battleIdle
		return b, func() tea.Msg {
			return statusMsg{text: "No questions available for that pick", isError: true}
		}
	}

	b.phase = battleAsking
	b.questions = qs
	b.index = 0
	b.choice = 0
	b.correct = 0
	b.wrongIDs = nil
	b.startedAt = b.clk.Now()
	return b, nil
}

func (b battleModel) updateAsking(msg tea.Msg) (battleModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	q := b.questions[b.index]
	switch {
	case key.Matches(keyMsg, keys.Up):
		if b.choice > 0 {
			b.choice--
		}
	case key.Matches(keyMsg, keys.Down):
		if b.choice < len(q.Choices)-1 {
			b.choice++
		}
	case key.Matches(keyMsg, keys.Enter):
		if b.choice == q.Answer {
			b.correct++
		} else {
			b.wrongIDs = append(b.wrongIDs, q.ID)
		}
		b.index++
		b.choice = 0
		if b.index >= len(b.questions) {
			return b.finishRound()
		}
	case key.Matches(keyMsg, keys.Back):
		b.phase = battleIdle
		b.questions = nil
		return b, func() tea.Msg {
			return statusMsg{text: "Battle abandoned, nothing recorded"}
		}
	}
	return b, nil
}

func (b battleModel) finishRound() (battleModel, tea.Cmd) {
	b.phase = battleDone

	total := len(b.questions)
	victory := battle.IsVictory(b.correct, total)
	in := battle.Input{
		Subject:          b.subject,
		Mode:             b.mode,
		TotalQuestions:   total,
		CorrectAnswers:   b.correct,
		XPEarned:         app.BattleXP(b.correct, victory),
		TotalTimeSeconds: int(b.clk.Now().Sub(b.startedAt).Seconds()),
		WrongQuestionIDs: b.wrongIDs,
	}
	b.questions = nil

	return b, func() tea.Msg {
		res, err := b.core.RecordBattle(in)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return battleRecordedMsg{result: res}
	}
}

func (b battleModel) view() string {
	w := b.width - 4

	switch b.phase {
	case battleSetup:
		if b.form == nil {
			return ""
		}
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Battle"), "", b.form.View(),
		))
	case battleAsking:
		return b.viewQuestion(w)
	case battleDone:
		return b.viewResult(w)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Quiz Battle"),
		"",
		mutedStyle.Render("Answer at least 60% correctly to claim victory."),
		"",
		mutedStyle.Render("n: new battle"),
	))
}

func (b battleModel) viewQuestion(w int) string {
	q := b.questions[b.index]

	rows := []string{
		titleStyle.Render(fmt.Sprintf("Question %d/%d", b.index+1, len(b.questions))),
		mutedStyle.Render(b.subject),
		"",
		normalItemStyle.Bold(true).Render(q.Prompt),
		"",
	}
	for i, c := range q.Choices {
		cursor := "  "
		style := normalItemStyle
		if i == b.choice {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%d. %s", cursor, i+1, c)))
	}
	rows = append(rows, "", mutedStyle.Render("enter: answer  esc: abandon"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (b battleModel) viewResult(w int) string {
	if b.result == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Recording battle..."))
	}

	rec := b.result.Battle
	verdict := errorStyle.Bold(true).Render("DEFEAT")
	if rec.IsVictory {
		verdict = goldStyle.Bold(true).Render("VICTORY!")
	}

	rows := []string{
		verdict,
		"",
		normalItemStyle.Render(fmt.Sprintf("Correct: %d/%d", rec.CorrectAnswers, rec.TotalQuestions)),
		goldStyle.Render(fmt.Sprintf("+%d XP", rec.XPEarned)),
		mutedStyle.Render(fmt.Sprintf("Level %d %s", b.result.Progress.Level, b.result.Progress.Title)),
		"",
		mutedStyle.Render("n: again  esc: back"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}
