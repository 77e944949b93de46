// Package mission generates the once-per-day challenge set and tracks
// progress and reward claims.
package mission

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/ozdmrel/studyquest/internal/clock"
)

// Repository is the persistence port for the active mission set. A load
// that finds nothing (or an unreadable set) returns a zero Set.
type Repository interface {
	LoadMissionSet() (Set, error)
	SaveMissionSet(Set) error
}

// Engine owns the mission set. The random source is injected so
// generation is replayable in tests; production wiring seeds it from
// entropy.
type Engine struct {
	repo Repository
	clk  clock.Clock
	rng  *rand.Rand
}

func NewEngine(repo Repository, clk clock.Clock, rng *rand.Rand) *Engine {
	return &Engine{repo: repo, clk: clk, rng: rng}
}

// EnsureToday returns today's mission set, generating and persisting a
// fresh one when the stored set belongs to another calendar day.
func (e *Engine) EnsureToday(level int) (Set, error) {
	set, err := e.repo.LoadMissionSet()
	if err != nil {
		return Set{}, fmt.Errorf("load missions: %w", err)
	}
	today := e.clk.Today()
	if set.GeneratedDate == today {
		return set, nil
	}
	set = e.Generate(level)
	if err := e.repo.SaveMissionSet(set); err != nil {
		return Set{}, fmt.Errorf("save missions: %w", err)
	}
	return set, nil
}

// Generate builds a fresh set for today: level-many distinct templates
// drawn uniformly without replacement, targets and rewards scaled by the
// difficulty multiplier.
func (e *Engine) Generate(level int) Set {
	count := CountForLevel(level)
	multiplier := DifficultyMultiplier(level)

	order := e.rng.Perm(len(templatePool))
	missions := make([]Mission, 0, count)
	for _, idx := range order[:count] {
		tpl := templatePool[idx]
		target := scale(tpl.BaseTarget, multiplier)
		missions = append(missions, Mission{
			ID:          uuid.NewString(),
			Type:        tpl.Type,
			Title:       tpl.Type.DisplayName(),
			Description: tpl.Type.Describe(target),
			Target:      target,
			XP:          scale(tpl.BaseXP, multiplier),
		})
	}
	return Set{GeneratedDate: e.clk.Today(), Missions: missions}
}

// UpdateProgress credits amount toward every not-yet-completed mission of
// the given type, clamping at the target. Generation draws distinct
// types, but the update applies to all matches regardless.
func (e *Engine) UpdateProgress(t Type, amount int) (Set, error) {
	set, err := e.repo.LoadMissionSet()
	if err != nil {
		return Set{}, fmt.Errorf("load missions: %w", err)
	}
	if amount <= 0 {
		return set, nil
	}
	changed := false
	for i := range set.Missions {
		m := &set.Missions[i]
		if m.Type != t || m.Completed {
			continue
		}
		m.Current += amount
		if m.Current > m.Target {
			m.Current = m.Target
		}
		m.Completed = m.Current >= m.Target
		changed = true
	}
	if !changed {
		return set, nil
	}
	if err := e.repo.SaveMissionSet(set); err != nil {
		return Set{}, fmt.Errorf("save missions: %w", err)
	}
	return set, nil
}

// Claim marks a completed mission's reward as taken and returns its XP.
// A mission that is not completed, already claimed, or unknown yields a
// zero reward and no mutation; claims cannot be replayed for extra XP.
func (e *Engine) Claim(id string) (int, Set, error) {
	set, err := e.repo.LoadMissionSet()
	if err != nil {
		return 0, Set{}, fmt.Errorf("load missions: %w", err)
	}
	for i := range set.Missions {
		m := &set.Missions[i]
		if m.ID != id {
			continue
		}
		if !m.Completed || m.Claimed {
			return 0, set, nil
		}
		m.Claimed = true
		if err := e.repo.SaveMissionSet(set); err != nil {
			return 0, Set{}, fmt.Errorf("save missions: %w", err)
		}
		return m.XP, set, nil
	}
	return 0, set, nil
}

// Current returns the stored set without regeneration.
func (e *Engine) Current() (Set, error) {
	set, err := e.repo.LoadMissionSet()
	if err != nil {
		return Set{}, fmt.Errorf("load missions: %w", err)
	}
	return set, nil
}
