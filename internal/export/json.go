package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ozdmrel/studyquest/internal/battle"
	"github.com/ozdmrel/studyquest/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Sessions   []jsonSession `json:"sessions"`
	Battles    []jsonBattle  `json:"battles"`
}

type jsonSession struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Subject      string `json:"subject"`
	FocusMinutes int    `json:"focus_minutes"`
	BreakMinutes int    `json:"break_minutes"`
}

type jsonBattle struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	Subject          string   `json:"subject"`
	Mode             string   `json:"mode"`
	TotalQuestions   int      `json:"total_questions"`
	CorrectAnswers   int      `json:"correct_answers"`
	XPEarned         int      `json:"xp_earned"`
	TotalTimeSeconds int      `json:"total_time_seconds"`
	IsVictory        bool     `json:"is_victory"`
	WrongQuestionIDs []string `json:"wrong_question_ids,omitempty"`
}

// ToJSON writes the session log and battle history as one document.
func ToJSON(sessions []store.StudySession, battles []battle.Record, path string) error {
	doc := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, s := range sessions {
		doc.Sessions = append(doc.Sessions, jsonSession{
			ID:           s.ID,
			Date:         s.Date,
			Subject:      s.Subject,
			FocusMinutes: s.FocusMinutes,
			BreakMinutes: s.BreakMinutes,
		})
	}
	for _, b := range battles {
		doc.Battles = append(doc.Battles, jsonBattle{
			ID:               b.ID,
			Date:             b.Date,
			Subject:          b.Subject,
			Mode:             b.Mode,
			TotalQuestions:   b.TotalQuestions,
			CorrectAnswers:   b.CorrectAnswers,
			XPEarned:         b.XPEarned,
			TotalTimeSeconds: b.TotalTimeSeconds,
			IsVictory:        b.IsVictory,
			WrongQuestionIDs: b.WrongQuestionIDs,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
