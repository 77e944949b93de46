package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertStudySession records a finalized timer session.
func (s *Store) InsertStudySession(date, subject string, focusMinutes, breakMinutes int) (*StudySession, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO study_sessions (date, subject, focus_minutes, break_minutes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		date, subject, focusMinutes, breakMinutes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert study session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetStudySession(id)
}

func (s *Store) GetStudySession(id int64) (*StudySession, error) {
	sess := &StudySession{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, date, subject, focus_minutes, break_minutes, created_at
		 FROM study_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Date, &sess.Subject, &sess.FocusMinutes, &sess.BreakMinutes, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get study session %d: %w", id, err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sess, nil
}

// ListStudySessions returns sessions newest first, optionally limited.
func (s *Store) ListStudySessions(limit int) ([]StudySession, error) {
	query := `SELECT id, date, subject, focus_minutes, break_minutes, created_at
		 FROM study_sessions ORDER BY id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	defer rows.Close()

	var sessions []StudySession
	for rows.Next() {
		var sess StudySession
		var createdAt string
		if err := rows.Scan(&sess.ID, &sess.Date, &sess.Subject,
			&sess.FocusMinutes, &sess.BreakMinutes, &createdAt); err != nil {
			return nil, err
		}
		sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetDailyStudy aggregates study minutes per day for dates in [from, to],
// both calendar-day strings, inclusive.
func (s *Store) GetDailyStudy(from, to string) ([]DailyStudy, error) {
	rows, err := s.db.Query(`
		SELECT date, COALESCE(SUM(focus_minutes), 0), COALESCE(SUM(break_minutes), 0), COUNT(*)
		FROM study_sessions
		WHERE date >= ? AND date <= ?
		GROUP BY date
		ORDER BY date`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("daily study: %w", err)
	}
	defer rows.Close()

	var days []DailyStudy
	for rows.Next() {
		var d DailyStudy
		if err := rows.Scan(&d.Date, &d.FocusMinutes, &d.BreakMinutes, &d.SessionCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// GetTodayFocusMinutes sums focus minutes recorded for the given day.
func (s *Store) GetTodayFocusMinutes(date string) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(focus_minutes), 0) FROM study_sessions WHERE date = ?`, date,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
