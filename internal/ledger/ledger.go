// Package ledger is the single source of truth for XP, level and title.
package ledger

import "fmt"

// Record is the durable progress record. Level and Title are always
// recomputed from XP before a save; they are never written independently.
type Record struct {
	XP                     int
	Level                  int
	Title                  string
	TotalQuestionsAnswered int
	TotalCorrectAnswers    int
	TotalBattles           int
	TotalBattleWins        int
}

// Recompute refreshes the derived level and title from XP.
func (r *Record) Recompute() {
	r.Level = LevelOf(r.XP)
	r.Title = TitleOf(r.Level)
}

// DefaultRecord is the record used when nothing has been persisted yet.
func DefaultRecord() Record {
	r := Record{}
	r.Recompute()
	return r
}

// Repository is the persistence port for the progress record. A load that
// finds nothing returns DefaultRecord, not an error.
type Repository interface {
	LoadProgress() (Record, error)
	SaveProgress(Record) error
}

// Ledger mediates every mutation of the progress record.
type Ledger struct {
	repo Repository
}

func New(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Current returns the persisted record with derived fields refreshed.
func (l *Ledger) Current() (Record, error) {
	rec, err := l.repo.LoadProgress()
	if err != nil {
		return Record{}, fmt.Errorf("load progress: %w", err)
	}
	rec.Recompute()
	return rec, nil
}

// Add credits amount XP and persists the updated record.
func (l *Ledger) Add(amount int) (Record, error) {
	if amount <= 0 {
		return l.Current()
	}
	rec, err := l.repo.LoadProgress()
	if err != nil {
		return Record{}, fmt.Errorf("load progress: %w", err)
	}
	rec.XP += amount
	rec.Recompute()
	if err := l.repo.SaveProgress(rec); err != nil {
		return Record{}, fmt.Errorf("save progress: %w", err)
	}
	return rec, nil
}

// Spend debits amount XP. It reports false and leaves the record untouched
// when the balance is insufficient. This is the only gate for purchases.
func (l *Ledger) Spend(amount int) (Record, bool, error) {
	rec, err := l.repo.LoadProgress()
	if err != nil {
		return Record{}, false, fmt.Errorf("load progress: %w", err)
	}
	if amount <= 0 || rec.XP < amount {
		rec.Recompute()
		return rec, false, nil
	}
	rec.XP -= amount
	rec.Recompute()
	if err := l.repo.SaveProgress(rec); err != nil {
		return Record{}, false, fmt.Errorf("save progress: %w", err)
	}
	return rec, true, nil
}

// ApplyBattle folds a finished battle into the record in one
// read-modify-write: XP credit plus the battle aggregates.
func (l *Ledger) ApplyBattle(xp, questions, correct int, win bool) (Record, error) {
	rec, err := l.repo.LoadProgress()
	if err != nil {
		return Record{}, fmt.Errorf("load progress: %w", err)
	}
	rec.XP += xp
	rec.TotalQuestionsAnswered += questions
	rec.TotalCorrectAnswers += correct
	rec.TotalBattles++
	if win {
		rec.TotalBattleWins++
	}
	rec.Recompute()
	if err := l.repo.SaveProgress(rec); err != nil {
		return Record{}, fmt.Errorf("save progress: %w", err)
	}
	return rec, nil
}
