package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/ozdmrel/studyquest/internal/battle"
	"github.com/ozdmrel/studyquest/internal/store"
)

// SessionsToCSV writes the study session log.
func SessionsToCSV(sessions []store.StudySession, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Subject", "Focus (min)", "Break (min)"}); err != nil {
		return err
	}

	for _, s := range sessions {
		row := []string{
			fmt.Sprintf("%d", s.ID),
			s.Date,
			s.Subject,
			fmt.Sprintf("%d", s.FocusMinutes),
			fmt.Sprintf("%d", s.BreakMinutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// BattlesToCSV writes battle history, newest first as stored.
func BattlesToCSV(battles []battle.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"ID", "Date", "Subject", "Mode", "Questions", "Correct", "XP", "Time (s)", "Victory", "Wrong Question IDs"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, b := range battles {
		row := []string{
			b.ID,
			b.Date,
			b.Subject,
			b.Mode,
			fmt.Sprintf("%d", b.TotalQuestions),
			fmt.Sprintf("%d", b.CorrectAnswers),
			fmt.Sprintf("%d", b.XPEarned),
			fmt.Sprintf("%d", b.TotalTimeSeconds),
			fmt.Sprintf("%t", b.IsVictory),
			strings.Join(b.WrongQuestionIDs, " "),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
