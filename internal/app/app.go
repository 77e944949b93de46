// Package app wires the engines together and sequences their
// cross-component effects: session finalize feeds XP and missions, battles
// feed XP and missions, claims feed XP, and an all-claimed day feeds the
// streak through a one-shot guard.
package app

import (
	"fmt"
	"math/rand"

	"github.com/ozdmrel/studyquest/internal/battle"
	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/ledger"
	"github.com/ozdmrel/studyquest/internal/mission"
	"github.com/ozdmrel/studyquest/internal/store"
	"github.com/ozdmrel/studyquest/internal/streak"
	"github.com/ozdmrel/studyquest/internal/timer"
)

// XPPerFocusMinute converts reported focus minutes into XP.
const XPPerFocusMinute = 2

// victoryBonusXP tops up the per-correct-answer battle XP on a win.
const (
	xpPerCorrectAnswer = 10
	victoryBonusXP     = 25
)

// BattleXP is the XP a finished battle is worth.
func BattleXP(correctAnswers int, victory bool) int {
	xp := correctAnswers * xpPerCorrectAnswer
	if victory {
		xp += victoryBonusXP
	}
	return xp
}

// App owns the engines over one shared store.
type App struct {
	Store    *store.Store
	Clock    clock.Clock
	Ledger   *ledger.Ledger
	Missions *mission.Engine
	Streak   *streak.Engine
	Battles  *battle.Recorder

	// One-shot guard per process run: SyncStreak records at most once per
	// calendar day no matter how often the all-claimed state is observed.
	streakRecordedDate string
}

// New wires the engines over the store. The random source feeds mission
// generation and must already be seeded.
func New(s *store.Store, clk clock.Clock, rng *rand.Rand) *App {
	led := ledger.New(s)
	return &App{
		Store:    s,
		Clock:    clk,
		Ledger:   led,
		Missions: mission.NewEngine(s, clk, rng),
		Streak:   streak.NewEngine(s, clk),
		Battles:  battle.NewRecorder(s, led, clk),
	}
}

// EnsureMissions returns today's mission set, regenerating it at the
// current level when the stored set is stale.
func (a *App) EnsureMissions() (mission.Set, error) {
	progress, err := a.Ledger.Current()
	if err != nil {
		return mission.Set{}, err
	}
	return a.Missions.EnsureToday(progress.Level)
}

// SessionResult is everything a finalized session changed.
type SessionResult struct {
	Session  *store.StudySession
	XPEarned int
	Progress ledger.Record
	Missions mission.Set
}

// FinalizeSession commits a finished timer session: the minute report is
// persisted first, then XP is credited and mission progress advances.
// The summary must come from a completed finalize, never a live engine.
func (a *App) FinalizeSession(subject string, sum timer.Summary) (*SessionResult, error) {
	sess, err := a.Store.InsertStudySession(a.Clock.Today(), subject, sum.FocusMinutes, sum.BreakMinutes)
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	xp := sum.FocusMinutes * XPPerFocusMinute
	progress, err := a.Ledger.Add(xp)
	if err != nil {
		return nil, err
	}

	if _, err := a.Missions.UpdateProgress(mission.TypeFocusMinutes, sum.FocusMinutes); err != nil {
		return nil, err
	}
	set, err := a.Missions.UpdateProgress(mission.TypeSessions, 1)
	if err != nil {
		return nil, err
	}

	return &SessionResult{Session: sess, XPEarned: xp, Progress: progress, Missions: set}, nil
}

// BattleResult is everything a recorded battle changed.
type BattleResult struct {
	Battle   battle.Record
	Progress ledger.Record
	Missions mission.Set
}

// RecordBattle stores the battle, applies its XP and aggregates, and
// advances every mission type the battle feeds.
func (a *App) RecordBattle(in battle.Input) (*BattleResult, error) {
	rec, progress, err := a.Battles.Record(in)
	if err != nil {
		return nil, err
	}

	if _, err := a.Missions.UpdateProgress(mission.TypeQuestions, in.TotalQuestions); err != nil {
		return nil, err
	}
	if _, err := a.Missions.UpdateProgress(mission.TypeCorrectAnswers, in.CorrectAnswers); err != nil {
		return nil, err
	}
	set, err := a.Missions.UpdateProgress(mission.TypeBattles, 1)
	if err != nil {
		return nil, err
	}
	if rec.IsVictory {
		set, err = a.Missions.UpdateProgress(mission.TypeBattleWins, 1)
		if err != nil {
			return nil, err
		}
	}

	return &BattleResult{Battle: rec, Progress: progress, Missions: set}, nil
}

// ClaimResult is everything a successful claim changed. Reward is zero
// for an invalid claim and nothing else moves.
type ClaimResult struct {
	Reward   int
	Progress ledger.Record
	Missions mission.Set
}

// ClaimMission takes a mission's reward and credits it to the ledger.
func (a *App) ClaimMission(id string) (*ClaimResult, error) {
	reward, set, err := a.Missions.Claim(id)
	if err != nil {
		return nil, err
	}
	progress, err := a.Ledger.Current()
	if err != nil {
		return nil, err
	}
	if reward > 0 {
		progress, err = a.Ledger.Add(reward)
		if err != nil {
			return nil, err
		}
	}
	return &ClaimResult{Reward: reward, Progress: progress, Missions: set}, nil
}

// SyncStreak records today as a perfect day once every mission is
// claimed. The process-level guard keeps re-evaluations of the same
// all-claimed state from re-entering the engine; the engine's own
// same-day idempotence is the second line of defense.
func (a *App) SyncStreak() (*streak.Result, error) {
	today := a.Clock.Today()
	if a.streakRecordedDate == today {
		return nil, nil
	}
	set, err := a.Missions.Current()
	if err != nil {
		return nil, err
	}
	if set.GeneratedDate != today || !set.AllClaimed() {
		return nil, nil
	}
	res, err := a.Streak.RecordDailyCompletion()
	if err != nil {
		return nil, err
	}
	a.streakRecordedDate = today
	return &res, nil
}
