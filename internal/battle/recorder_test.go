package battle

import (
	"testing"
	"time"

	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/ledger"
)

// memRepo stores battles newest first, trimming at HistoryCap like the
// real store does.
type memRepo struct {
	battles []Record
}

func (m *memRepo) InsertBattle(r Record) error {
	m.battles = append([]Record{r}, m.battles...)
	if len(m.battles) > HistoryCap {
		m.battles = m.battles[:HistoryCap]
	}
	return nil
}

func (m *memRepo) ListBattles(limit int) ([]Record, error) {
	if limit <= 0 || limit > len(m.battles) {
		return m.battles, nil
	}
	return m.battles[:limit], nil
}

type memLedgerRepo struct {
	rec ledger.Record
}

func (m *memLedgerRepo) LoadProgress() (ledger.Record, error) { return m.rec, nil }

func (m *memLedgerRepo) SaveProgress(r ledger.Record) error {
	m.rec = r
	return nil
}

func newTestRecorder() (*Recorder, *memRepo) {
	repo := &memRepo{}
	led := ledger.New(&memLedgerRepo{})
	clk := &clock.Fixed{Current: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewRecorder(repo, led, clk), repo
}

// ============================================================
// Victory threshold
// ============================================================

func TestIsVictory(t *testing.T) {
	cases := []struct {
		correct int
		total   int
		win     bool
	}{
		{6, 10, true},
		{5, 10, false},
		{3, 5, true},
		{2, 5, false},
		{0, 0, false},
		{1, 1, true},
		{0, 5, false},
	}
	for _, c := range cases {
		if got := IsVictory(c.correct, c.total); got != c.win {
			t.Errorf("IsVictory(%d, %d) = %v, want %v", c.correct, c.total, got, c.win)
		}
	}
}

// ============================================================
// Recording
// ============================================================

func TestRecordStoresAndCredits(t *testing.T) {
	r, repo := newTestRecorder()

	rec, progress, err := r.Record(Input{
		Subject:          "Math",
		Mode:             "standard",
		TotalQuestions:   10,
		CorrectAnswers:   7,
		XPEarned:         95,
		TotalTimeSeconds: 120,
		WrongQuestionIDs: []string{"math-01", "math-02", "math-01"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" || rec.Date != "2025-03-10" {
		t.Fatalf("bad record identity: %+v", rec)
	}
	if !rec.IsVictory {
		t.Fatal("7/10 is a victory")
	}
	if progress.XP != 95 {
		t.Fatalf("ledger XP = %d", progress.XP)
	}
	if progress.TotalBattles != 1 || progress.TotalBattleWins != 1 {
		t.Fatalf("aggregates wrong: %+v", progress)
	}
	if len(repo.battles) != 1 {
		t.Fatal("battle not stored")
	}
}

func TestRecordDefeat(t *testing.T) {
	r, _ := newTestRecorder()

	rec, progress, err := r.Record(Input{
		Subject:        "Science",
		Mode:           "standard",
		TotalQuestions: 10,
		CorrectAnswers: 5,
		XPEarned:       50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.IsVictory {
		t.Fatal("5/10 is a defeat at the 0.6 threshold")
	}
	if progress.TotalBattleWins != 0 {
		t.Fatal("defeat must not count a win")
	}
	if progress.XP != 50 {
		t.Fatalf("defeat still pays its XP, got %d", progress.XP)
	}
}

// ============================================================
// History and review
// ============================================================

func TestHistoryNewestFirst(t *testing.T) {
	r, _ := newTestRecorder()

	r.Record(Input{Subject: "Math", TotalQuestions: 5, CorrectAnswers: 4})
	r.Record(Input{Subject: "Science", TotalQuestions: 5, CorrectAnswers: 2})

	battles, err := r.History(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(battles) != 2 {
		t.Fatalf("expected 2 battles, got %d", len(battles))
	}
	if battles[0].Subject != "Science" {
		t.Fatal("expected newest battle first")
	}

	limited, err := r.History(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d", len(limited))
	}
}

func TestAggregatedWrongQuestionIDs(t *testing.T) {
	r, _ := newTestRecorder()

	r.Record(Input{TotalQuestions: 5, CorrectAnswers: 3, WrongQuestionIDs: []string{"a", "b"}})
	r.Record(Input{TotalQuestions: 5, CorrectAnswers: 3, WrongQuestionIDs: []string{"b", "c"}})

	ids, err := r.AggregatedWrongQuestionIDs()
	if err != nil {
		t.Fatal(err)
	}
	// Newest battle first, first-seen wins the position.
	want := []string{"b", "c", "a"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestAggregatedWrongQuestionIDsEmpty(t *testing.T) {
	r, _ := newTestRecorder()

	ids, err := r.AggregatedWrongQuestionIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}
