package mission

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/ozdmrel/studyquest/internal/clock"
)

type memRepo struct {
	set Set
}

func (m *memRepo) LoadMissionSet() (Set, error) { return m.set, nil }

func (m *memRepo) SaveMissionSet(s Set) error {
	m.set = s
	return nil
}

func newTestEngine(seed int64) (*Engine, *memRepo, *clock.Fixed) {
	repo := &memRepo{}
	clk := &clock.Fixed{Current: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewEngine(repo, clk, rand.New(rand.NewSource(seed))), repo, clk
}

// ============================================================
// Scaling rules
// ============================================================

func TestCountForLevel(t *testing.T) {
	cases := []struct {
		level int
		count int
	}{
		{1, 2}, {4, 2}, {5, 3}, {10, 3},
	}
	for _, c := range cases {
		if got := CountForLevel(c.level); got != c.count {
			t.Errorf("CountForLevel(%d) = %d, want %d", c.level, got, c.count)
		}
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	if got := DifficultyMultiplier(1); got != 1.0 {
		t.Errorf("DifficultyMultiplier(1) = %v", got)
	}
	if got := DifficultyMultiplier(5); math.Abs(got-1.6) > 1e-9 {
		t.Errorf("DifficultyMultiplier(5) = %v, want 1.6", got)
	}
	if got := DifficultyMultiplier(0); got != 1.0 {
		t.Errorf("DifficultyMultiplier(0) = %v, want clamp to 1", got)
	}
}

// ============================================================
// Generation
// ============================================================

func TestGenerateSetShape(t *testing.T) {
	e, _, clk := newTestEngine(42)

	set := e.Generate(5)
	if set.GeneratedDate != clk.Today() {
		t.Fatalf("generated date = %q, want %q", set.GeneratedDate, clk.Today())
	}
	if len(set.Missions) != 3 {
		t.Fatalf("expected 3 missions at level 5, got %d", len(set.Missions))
	}

	seen := make(map[Type]bool)
	ids := make(map[string]bool)
	for _, m := range set.Missions {
		if seen[m.Type] {
			t.Fatalf("duplicate mission type %q", m.Type)
		}
		seen[m.Type] = true
		if ids[m.ID] || m.ID == "" {
			t.Fatalf("bad mission id %q", m.ID)
		}
		ids[m.ID] = true
		if m.Current != 0 || m.Completed || m.Claimed {
			t.Fatalf("fresh mission carries progress: %+v", m)
		}
	}
}

func TestGenerateScalesTargets(t *testing.T) {
	e, _, _ := newTestEngine(42)

	// At level 5 every target and reward is base * 1.6, rounded up.
	set := e.Generate(5)
	for _, m := range set.Missions {
		for _, tpl := range templatePool {
			if tpl.Type != m.Type {
				continue
			}
			wantTarget := int(math.Ceil(float64(tpl.BaseTarget) * 1.6))
			wantXP := int(math.Ceil(float64(tpl.BaseXP) * 1.6))
			if m.Target != wantTarget {
				t.Errorf("%s target = %d, want %d", m.Type, m.Target, wantTarget)
			}
			if m.XP != wantXP {
				t.Errorf("%s xp = %d, want %d", m.Type, m.XP, wantXP)
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	e1, _, _ := newTestEngine(7)
	e2, _, _ := newTestEngine(7)

	a := e1.Generate(3)
	b := e2.Generate(3)
	for i := range a.Missions {
		if a.Missions[i].Type != b.Missions[i].Type {
			t.Fatalf("same seed drew different sets: %v vs %v", a.Missions[i].Type, b.Missions[i].Type)
		}
	}
}

// ============================================================
// EnsureToday
// ============================================================

func TestEnsureTodayKeepsSameDaySet(t *testing.T) {
	e, _, _ := newTestEngine(1)

	first, err := e.EnsureToday(1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.EnsureToday(1)
	if err != nil {
		t.Fatal(err)
	}
	if first.Missions[0].ID != second.Missions[0].ID {
		t.Fatal("same-day ensure must not regenerate")
	}
}

func TestEnsureTodayRegeneratesOnNewDay(t *testing.T) {
	e, repo, clk := newTestEngine(1)

	first, _ := e.EnsureToday(1)

	// Progress on the old day is abandoned wholesale at the boundary.
	repo.set.Missions[0].Current = 5

	clk.AdvanceDays(1)
	second, err := e.EnsureToday(1)
	if err != nil {
		t.Fatal(err)
	}
	if second.GeneratedDate == first.GeneratedDate {
		t.Fatal("new day should regenerate the set")
	}
	for _, m := range second.Missions {
		if m.Current != 0 {
			t.Fatal("regenerated missions must start at zero")
		}
	}
}

// ============================================================
// Progress
// ============================================================

func TestUpdateProgressClampsAndCompletes(t *testing.T) {
	e, repo, clk := newTestEngine(1)
	repo.set = Set{
		GeneratedDate: clk.Today(),
		Missions: []Mission{
			{ID: "m1", Type: TypeQuestions, Target: 10, XP: 35},
		},
	}

	set, err := e.UpdateProgress(TypeQuestions, 25)
	if err != nil {
		t.Fatal(err)
	}
	m := set.Missions[0]
	if m.Current != 10 {
		t.Fatalf("overshoot must clamp to target, got %d", m.Current)
	}
	if !m.Completed {
		t.Fatal("mission at target should be completed")
	}
}

func TestUpdateProgressSkipsOtherTypesAndCompleted(t *testing.T) {
	e, repo, clk := newTestEngine(1)
	repo.set = Set{
		GeneratedDate: clk.Today(),
		Missions: []Mission{
			{ID: "m1", Type: TypeQuestions, Target: 10, Current: 10, Completed: true},
			{ID: "m2", Type: TypeBattles, Target: 2},
		},
	}

	set, err := e.UpdateProgress(TypeQuestions, 5)
	if err != nil {
		t.Fatal(err)
	}
	if set.Missions[0].Current != 10 {
		t.Fatal("completed mission must not accumulate further")
	}
	if set.Missions[1].Current != 0 {
		t.Fatal("other types must be untouched")
	}
}

func TestUpdateProgressIgnoresNonPositive(t *testing.T) {
	e, repo, clk := newTestEngine(1)
	repo.set = Set{
		GeneratedDate: clk.Today(),
		Missions:      []Mission{{ID: "m1", Type: TypeSessions, Target: 2}},
	}

	set, err := e.UpdateProgress(TypeSessions, 0)
	if err != nil {
		t.Fatal(err)
	}
	if set.Missions[0].Current != 0 {
		t.Fatal("zero amount must be a no-op")
	}
}

// ============================================================
// Claims
// ============================================================

func TestClaimOnce(t *testing.T) {
	e, repo, clk := newTestEngine(1)
	repo.set = Set{
		GeneratedDate: clk.Today(),
		Missions: []Mission{
			{ID: "m1", Type: TypeQuestions, Target: 10, Current: 10, Completed: true, XP: 35},
		},
	}

	reward, set, err := e.Claim("m1")
	if err != nil {
		t.Fatal(err)
	}
	if reward != 35 {
		t.Fatalf("reward = %d, want 35", reward)
	}
	if !set.Missions[0].Claimed {
		t.Fatal("mission should be marked claimed")
	}

	// Replay yields nothing.
	reward, _, err = e.Claim("m1")
	if err != nil {
		t.Fatal(err)
	}
	if reward != 0 {
		t.Fatalf("second claim paid %d", reward)
	}
}

func TestClaimRejectsIncompleteAndUnknown(t *testing.T) {
	e, repo, clk := newTestEngine(1)
	repo.set = Set{
		GeneratedDate: clk.Today(),
		Missions:      []Mission{{ID: "m1", Type: TypeQuestions, Target: 10, Current: 3, XP: 35}},
	}

	reward, set, err := e.Claim("m1")
	if err != nil {
		t.Fatal(err)
	}
	if reward != 0 || set.Missions[0].Claimed {
		t.Fatal("incomplete mission must not be claimable")
	}

	reward, _, err = e.Claim("nope")
	if err != nil {
		t.Fatal(err)
	}
	if reward != 0 {
		t.Fatal("unknown id must yield zero")
	}
}

// ============================================================
// Set predicates
// ============================================================

func TestSetPredicates(t *testing.T) {
	empty := Set{}
	if empty.AllCompleted() || empty.AllClaimed() {
		t.Fatal("empty set must never count as complete")
	}

	set := Set{Missions: []Mission{
		{Completed: true, Claimed: true},
		{Completed: true},
	}}
	if !set.AllCompleted() {
		t.Fatal("all missions completed")
	}
	if set.AllClaimed() {
		t.Fatal("one mission is unclaimed")
	}

	set.Missions[1].Claimed = true
	if !set.AllClaimed() {
		t.Fatal("all missions claimed")
	}
}
