// Package streak tracks consecutive perfect days (every mission claimed)
// with day-boundary semantics and fixed milestones.
package streak

import (
	"fmt"

	"github.com/ozdmrel/studyquest/internal/clock"
)

// historyCap bounds the stored completion history.
const historyCap = 365

// Record is the durable streak state.
type Record struct {
	CurrentStreak     int
	LongestStreak     int
	LastCompletedDate string // calendar-day string, empty when never completed
	History           []string
}

// Repository is the persistence port for the streak record. A load that
// finds nothing returns a zero Record.
type Repository interface {
	LoadStreak() (Record, error)
	SaveStreak(Record) error
}

// Result reports the outcome of a daily completion.
type Result struct {
	Record          Record
	AlreadyRecorded bool
	IsNewRecord     bool
	Milestone       Milestone
}

// Engine owns the streak record.
type Engine struct {
	repo Repository
	clk  clock.Clock
}

func NewEngine(repo Repository, clk clock.Clock) *Engine {
	return &Engine{repo: repo, clk: clk}
}

func (e *Engine) yesterday() string {
	return e.clk.Now().AddDate(0, 0, -1).Format(clock.DayFormat)
}

// Load returns the streak record, lazily repairing a broken streak: a
// last completion older than yesterday forces the current streak to zero
// and persists the repair. Longest streak and history are untouched.
func (e *Engine) Load() (Record, error) {
	rec, err := e.repo.LoadStreak()
	if err != nil {
		return Record{}, fmt.Errorf("load streak: %w", err)
	}
	if rec.CurrentStreak == 0 {
		return rec, nil
	}
	if d := rec.LastCompletedDate; d == e.clk.Today() || d == e.yesterday() {
		return rec, nil
	}
	rec.CurrentStreak = 0
	if err := e.repo.SaveStreak(rec); err != nil {
		return Record{}, fmt.Errorf("save streak repair: %w", err)
	}
	return rec, nil
}

// RecordDailyCompletion marks today as a perfect day. Recording the same
// day twice is a no-op returning the unchanged record; callers should
// still guard the call with their own once-per-day flag.
func (e *Engine) RecordDailyCompletion() (Result, error) {
	rec, err := e.Load()
	if err != nil {
		return Result{}, err
	}
	today := e.clk.Today()
	if rec.LastCompletedDate == today {
		return Result{Record: rec, AlreadyRecorded: true}, nil
	}

	if rec.LastCompletedDate == e.yesterday() {
		rec.CurrentStreak++
	} else {
		rec.CurrentStreak = 1
	}

	isNewRecord := rec.CurrentStreak > rec.LongestStreak
	if isNewRecord {
		rec.LongestStreak = rec.CurrentStreak
	}
	rec.LastCompletedDate = today

	rec.History = append(rec.History, today)
	if len(rec.History) > historyCap {
		rec.History = rec.History[len(rec.History)-historyCap:]
	}

	if err := e.repo.SaveStreak(rec); err != nil {
		return Result{}, fmt.Errorf("save streak: %w", err)
	}
	return Result{
		Record:      rec,
		IsNewRecord: isNewRecord,
		Milestone:   milestoneFor(rec.CurrentStreak),
	}, nil
}

// MilestoneStatuses reports unlock state and progress toward each fixed
// milestone. Unlocks key off the longest streak ever reached.
func (e *Engine) MilestoneStatuses() ([]MilestoneStatus, error) {
	rec, err := e.Load()
	if err != nil {
		return nil, err
	}
	statuses := make([]MilestoneStatus, 0, len(AllMilestones()))
	for _, m := range AllMilestones() {
		pct := float64(rec.CurrentStreak) / float64(m.Days()) * 100
		if pct > 100 {
			pct = 100
		}
		statuses = append(statuses, MilestoneStatus{
			Milestone:       m,
			Unlocked:        rec.LongestStreak >= m.Days(),
			ProgressPercent: pct,
		})
	}
	return statuses, nil
}
