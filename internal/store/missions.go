package store

import (
	"fmt"

	"github.com/ozdmrel/studyquest/internal/mission"
)

// LoadMissionSet returns the active mission set, ordered as generated.
// No stored missions yields a zero set.
func (s *Store) LoadMissionSet() (mission.Set, error) {
	rows, err := s.db.Query(
		`SELECT id, type, title, description, target, current, xp, completed, claimed, generated_date
		 FROM missions ORDER BY position`,
	)
	if err != nil {
		return mission.Set{}, fmt.Errorf("load missions: %w", err)
	}
	defer rows.Close()

	var set mission.Set
	for rows.Next() {
		var m mission.Mission
		var typ string
		var completed, claimed int
		if err := rows.Scan(&m.ID, &typ, &m.Title, &m.Description,
			&m.Target, &m.Current, &m.XP, &completed, &claimed, &set.GeneratedDate); err != nil {
			return mission.Set{}, fmt.Errorf("scan mission: %w", err)
		}
		m.Type = mission.Type(typ)
		m.Completed = completed != 0
		m.Claimed = claimed != 0
		set.Missions = append(set.Missions, m)
	}
	return set, rows.Err()
}

// SaveMissionSet replaces the stored set wholesale, in one transaction.
func (s *Store) SaveMissionSet(set mission.Set) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM missions`); err != nil {
		return fmt.Errorf("clear missions: %w", err)
	}
	for i, m := range set.Missions {
		_, err := tx.Exec(
			`INSERT INTO missions (id, type, title, description, target, current, xp, completed, claimed, generated_date, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, string(m.Type), m.Title, m.Description,
			m.Target, m.Current, m.XP, boolToInt(m.Completed), boolToInt(m.Claimed),
			set.GeneratedDate, i,
		)
		if err != nil {
			return fmt.Errorf("insert mission: %w", err)
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
