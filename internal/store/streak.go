package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ozdmrel/studyquest/internal/streak"
)

// LoadStreak returns the streak record. An absent row yields the zero
// record; an unreadable history blob degrades to an empty history.
func (s *Store) LoadStreak() (streak.Record, error) {
	var rec streak.Record
	var lastDate sql.NullString
	var history string
	err := s.db.QueryRow(
		`SELECT current_streak, longest_streak, last_completed_date, history FROM streak WHERE id = 1`,
	).Scan(&rec.CurrentStreak, &rec.LongestStreak, &lastDate, &history)
	if errors.Is(err, sql.ErrNoRows) {
		return streak.Record{}, nil
	}
	if err != nil {
		return streak.Record{}, fmt.Errorf("load streak: %w", err)
	}
	if lastDate.Valid {
		rec.LastCompletedDate = lastDate.String
	}
	if err := json.Unmarshal([]byte(history), &rec.History); err != nil {
		rec.History = nil
	}
	return rec, nil
}

// SaveStreak upserts the whole streak record in a single statement.
func (s *Store) SaveStreak(rec streak.Record) error {
	history, err := json.Marshal(rec.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	var lastDate any
	if rec.LastCompletedDate != "" {
		lastDate = rec.LastCompletedDate
	}
	_, err = s.db.Exec(
		`INSERT INTO streak (id, current_streak, longest_streak, last_completed_date, history)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_completed_date = excluded.last_completed_date,
			history = excluded.history`,
		rec.CurrentStreak, rec.LongestStreak, lastDate, string(history),
	)
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}
