// Package battle turns a finished quiz battle into a permanent record and
// a ledger update in one step.
package battle

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/ledger"
)

// HistoryCap bounds the stored battle history, newest first.
const HistoryCap = 100

// victoryRatio is the fixed share of correct answers that counts as a win.
const victoryRatio = 0.6

// Record is one stored battle outcome. Victory is computed once at
// creation and immutable thereafter.
type Record struct {
	ID               string
	Date             string
	Subject          string
	Mode             string
	TotalQuestions   int
	CorrectAnswers   int
	XPEarned         int
	TotalTimeSeconds int
	IsVictory        bool
	WrongQuestionIDs []string
}

// Repository is the persistence port for battle history. Insert prepends
// and trims to HistoryCap in one atomic call.
type Repository interface {
	InsertBattle(Record) error
	ListBattles(limit int) ([]Record, error)
}

// Input is a finished battle as reported by the quiz flow.
type Input struct {
	Subject          string
	Mode             string
	TotalQuestions   int
	CorrectAnswers   int
	XPEarned         int
	TotalTimeSeconds int
	WrongQuestionIDs []string
}

// IsVictory applies the fixed threshold: correct/total >= 0.6.
func IsVictory(correct, total int) bool {
	if total <= 0 {
		return false
	}
	return float64(correct)/float64(total) >= victoryRatio
}

// Recorder owns battle history and routes the ledger side of a recording
// through the ledger's own update path.
type Recorder struct {
	repo   Repository
	ledger *ledger.Ledger
	clk    clock.Clock
}

func NewRecorder(repo Repository, led *ledger.Ledger, clk clock.Clock) *Recorder {
	return &Recorder{repo: repo, ledger: led, clk: clk}
}

// Record stores the battle and applies XP and aggregates to the progress
// record. It returns the stored record and the updated ledger state.
func (r *Recorder) Record(in Input) (Record, ledger.Record, error) {
	rec := Record{
		ID:               uuid.NewString(),
		Date:             r.clk.Today(),
		Subject:          in.Subject,
		Mode:             in.Mode,
		TotalQuestions:   in.TotalQuestions,
		CorrectAnswers:   in.CorrectAnswers,
		XPEarned:         in.XPEarned,
		TotalTimeSeconds: in.TotalTimeSeconds,
		IsVictory:        IsVictory(in.CorrectAnswers, in.TotalQuestions),
		WrongQuestionIDs: in.WrongQuestionIDs,
	}
	if err := r.repo.InsertBattle(rec); err != nil {
		return Record{}, ledger.Record{}, fmt.Errorf("insert battle: %w", err)
	}
	progress, err := r.ledger.ApplyBattle(in.XPEarned, in.TotalQuestions, in.CorrectAnswers, rec.IsVictory)
	if err != nil {
		return Record{}, ledger.Record{}, err
	}
	return rec, progress, nil
}

// History returns stored battles, newest first.
func (r *Recorder) History(limit int) ([]Record, error) {
	return r.repo.ListBattles(limit)
}

// AggregatedWrongQuestionIDs unions the wrong-question IDs across all
// stored battles, de-duplicated, in newest-first first-seen order. It
// drives the review-mistakes flow.
func (r *Recorder) AggregatedWrongQuestionIDs() ([]string, error) {
	battles, err := r.repo.ListBattles(0)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var ids []string
	for _, b := range battles {
		for _, id := range b.WrongQuestionIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
