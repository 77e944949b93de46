package store

import (
	"encoding/json"
	"fmt"

	"github.com/ozdmrel/studyquest/internal/battle"
)

// InsertBattle prepends a battle to history and trims to the cap, in one
// transaction. Insertion order (rowid) is the newest-first ordering.
func (s *Store) InsertBattle(rec battle.Record) error {
	wrongIDs, err := json.Marshal(rec.WrongQuestionIDs)
	if err != nil {
		return fmt.Errorf("marshal wrong question ids: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO battles (id, date, subject, mode, total_questions, correct_answers, xp_earned, total_time, is_victory, wrong_question_ids)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Date, rec.Subject, rec.Mode,
		rec.TotalQuestions, rec.CorrectAnswers, rec.XPEarned, rec.TotalTimeSeconds,
		boolToInt(rec.IsVictory), string(wrongIDs),
	)
	if err != nil {
		return fmt.Errorf("insert battle: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM battles WHERE rowid NOT IN (SELECT rowid FROM battles ORDER BY rowid DESC LIMIT ?)`,
		battle.HistoryCap,
	)
	if err != nil {
		return fmt.Errorf("trim battles: %w", err)
	}
	return tx.Commit()
}

// ListBattles returns stored battles newest first. A limit of 0 returns
// the full (capped) history.
func (s *Store) ListBattles(limit int) ([]battle.Record, error) {
	query := `SELECT id, date, subject, mode, total_questions, correct_answers, xp_earned, total_time, is_victory, wrong_question_ids
		 FROM battles ORDER BY rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var battles []battle.Record
	for rows.Next() {
		var rec battle.Record
		var victory int
		var wrongIDs string
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Subject, &rec.Mode,
			&rec.TotalQuestions, &rec.CorrectAnswers, &rec.XPEarned, &rec.TotalTimeSeconds,
			&victory, &wrongIDs); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		rec.IsVictory = victory != 0
		if err := json.Unmarshal([]byte(wrongIDs), &rec.WrongQuestionIDs); err != nil {
			rec.WrongQuestionIDs = nil
		}
		battles = append(battles, rec)
	}
	return battles, rows.Err()
}
