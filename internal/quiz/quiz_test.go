package quiz

import (
	"math/rand"
	"testing"
)

// ============================================================
// Bank
// ============================================================

func TestSubjects(t *testing.T) {
	subjects := Subjects()
	want := []string{"Math", "Science", "History", "Language"}
	if len(subjects) != len(want) {
		t.Fatalf("subjects = %v", subjects)
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Fatalf("subjects = %v, want %v", subjects, want)
		}
	}
}

func TestBySubject(t *testing.T) {
	for _, q := range BySubject("Math") {
		if q.Subject != "Math" {
			t.Fatalf("wrong subject in result: %+v", q)
		}
	}
	if got := BySubject("Astrology"); got != nil {
		t.Fatalf("unknown subject should yield nil, got %v", got)
	}
}

func TestBankAnswersInRange(t *testing.T) {
	for _, subject := range Subjects() {
		for _, q := range BySubject(subject) {
			if q.Answer < 0 || q.Answer >= len(q.Choices) {
				t.Errorf("question %s: answer index %d out of range", q.ID, q.Answer)
			}
			if len(q.Choices) < 2 {
				t.Errorf("question %s: too few choices", q.ID)
			}
		}
	}
}

func TestByIDs(t *testing.T) {
	qs := ByIDs([]string{"math-01", "unknown-id", "sci-02"})
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].ID != "math-01" || qs[1].ID != "sci-02" {
		t.Fatalf("order or identity lost: %v %v", qs[0].ID, qs[1].ID)
	}

	if got := ByIDs(nil); len(got) != 0 {
		t.Fatalf("nil ids should yield nothing, got %v", got)
	}
}

// ============================================================
// Round drawing
// ============================================================

func TestDrawRound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	round := DrawRound(rng, "Math", 3)
	if len(round) != 3 {
		t.Fatalf("round size = %d", len(round))
	}
	seen := make(map[string]bool)
	for _, q := range round {
		if q.Subject != "Math" {
			t.Fatalf("wrong subject drawn: %+v", q)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestDrawRoundClampsToPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	round := DrawRound(rng, "History", 50)
	if len(round) != len(BySubject("History")) {
		t.Fatalf("oversized draw should clamp, got %d", len(round))
	}
}

func TestDrawRoundUnknownSubject(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if got := DrawRound(rng, "Astrology", 5); got != nil {
		t.Fatalf("unknown subject should yield nil, got %v", got)
	}
}
