package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ozdmrel/studyquest/internal/ledger"
)

// LoadProgress returns the single progress record. An absent row yields
// the default record, never an error.
func (s *Store) LoadProgress() (ledger.Record, error) {
	var rec ledger.Record
	err := s.db.QueryRow(
		`SELECT xp, level, title, total_questions, total_correct, total_battles, total_battle_wins
		 FROM progress WHERE id = 1`,
	).Scan(&rec.XP, &rec.Level, &rec.Title,
		&rec.TotalQuestionsAnswered, &rec.TotalCorrectAnswers,
		&rec.TotalBattles, &rec.TotalBattleWins)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.DefaultRecord(), nil
	}
	if err != nil {
		return ledger.Record{}, fmt.Errorf("load progress: %w", err)
	}
	return rec, nil
}

// SaveProgress upserts the progress record in a single statement.
func (s *Store) SaveProgress(rec ledger.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (id, xp, level, title, total_questions, total_correct, total_battles, total_battle_wins)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			xp = excluded.xp,
			level = excluded.level,
			title = excluded.title,
			total_questions = excluded.total_questions,
			total_correct = excluded.total_correct,
			total_battles = excluded.total_battles,
			total_battle_wins = excluded.total_battle_wins`,
		rec.XP, rec.Level, rec.Title,
		rec.TotalQuestionsAnswered, rec.TotalCorrectAnswers,
		rec.TotalBattles, rec.TotalBattleWins,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
