package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS progress (
		id                INTEGER PRIMARY KEY CHECK (id = 1),
		xp                INTEGER NOT NULL DEFAULT 0,
		level             INTEGER NOT NULL DEFAULT 1,
		title             TEXT NOT NULL DEFAULT 'Novice',
		total_questions   INTEGER NOT NULL DEFAULT 0,
		total_correct     INTEGER NOT NULL DEFAULT 0,
		total_battles     INTEGER NOT NULL DEFAULT 0,
		total_battle_wins INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS missions (
		id             TEXT PRIMARY KEY,
		type           TEXT NOT NULL,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL,
		target         INTEGER NOT NULL,
		current        INTEGER NOT NULL DEFAULT 0,
		xp             INTEGER NOT NULL,
		completed      INTEGER NOT NULL DEFAULT 0,
		claimed        INTEGER NOT NULL DEFAULT 0,
		generated_date TEXT NOT NULL,
		position       INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS streak (
		id                  INTEGER PRIMARY KEY CHECK (id = 1),
		current_streak      INTEGER NOT NULL DEFAULT 0,
		longest_streak      INTEGER NOT NULL DEFAULT 0,
		last_completed_date TEXT,
		history             TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS battles (
		id                 TEXT PRIMARY KEY,
		date               TEXT NOT NULL,
		subject            TEXT NOT NULL,
		mode               TEXT NOT NULL,
		total_questions    INTEGER NOT NULL,
		correct_answers    INTEGER NOT NULL,
		xp_earned          INTEGER NOT NULL,
		total_time         INTEGER NOT NULL DEFAULT 0,
		is_victory         INTEGER NOT NULL DEFAULT 0,
		wrong_question_ids TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS study_sessions (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		date          TEXT NOT NULL,
		subject       TEXT NOT NULL,
		focus_minutes INTEGER NOT NULL DEFAULT 0,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON study_sessions(date);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('focus_minutes',   '25'),
		('break_minutes',   '5'),
		('sound',           'on'),
		('notifications',   'off'),
		('default_subject', 'General');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/studyquest/studyquest.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studyquest", "studyquest.db"), nil
}
