package store

import (
	"fmt"
	"testing"

	"github.com/ozdmrel/studyquest/internal/battle"
	"github.com/ozdmrel/studyquest/internal/ledger"
	"github.com/ozdmrel/studyquest/internal/mission"
	"github.com/ozdmrel/studyquest/internal/streak"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/studyquest.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen should succeed and not re-migrate.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestSeededSettings(t *testing.T) {
	s := newTestStore(t)

	cases := map[string]string{
		"focus_minutes":   "25",
		"break_minutes":   "5",
		"sound":           "on",
		"notifications":   "off",
		"default_subject": "General",
	}
	for key, want := range cases {
		got, err := s.GetSetting(key)
		if err != nil {
			t.Fatalf("get %q: %v", key, err)
		}
		if got != want {
			t.Errorf("setting %q = %q, want %q", key, got, want)
		}
	}
}

// ============================================================
// Progress
// ============================================================

func TestLoadProgressDefaultsWhenEmpty(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.LoadProgress()
	if err != nil {
		t.Fatal(err)
	}
	if rec.XP != 0 || rec.Level != 1 || rec.Title != "Novice" {
		t.Fatalf("expected default record, got %+v", rec)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := ledger.Record{
		XP: 450, Level: 4, Title: "Student",
		TotalQuestionsAnswered: 30, TotalCorrectAnswers: 22,
		TotalBattles: 4, TotalBattleWins: 3,
	}
	if err := s.SaveProgress(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadProgress()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	// Second save overwrites the single row.
	want.XP = 500
	want.Level = 5
	if err := s.SaveProgress(want); err != nil {
		t.Fatal(err)
	}
	got, _ = s.LoadProgress()
	if got.XP != 500 {
		t.Fatalf("upsert did not overwrite: %+v", got)
	}
}

// ============================================================
// Missions
// ============================================================

func TestMissionSetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := mission.Set{
		GeneratedDate: "2025-03-10",
		Missions: []mission.Mission{
			{ID: "a", Type: mission.TypeFocusMinutes, Title: "Deep Work", Description: "Study for 50 focused minutes", Target: 50, Current: 20, XP: 40},
			{ID: "b", Type: mission.TypeBattles, Title: "Challenger", Description: "Finish 2 quiz battles", Target: 2, Current: 2, XP: 45, Completed: true, Claimed: true},
		},
	}
	if err := s.SaveMissionSet(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadMissionSet()
	if err != nil {
		t.Fatal(err)
	}
	if got.GeneratedDate != want.GeneratedDate {
		t.Fatalf("date = %q", got.GeneratedDate)
	}
	if len(got.Missions) != 2 {
		t.Fatalf("missions = %d", len(got.Missions))
	}
	// Order must be generation order, not id order.
	if got.Missions[0].ID != "a" || got.Missions[1].ID != "b" {
		t.Fatalf("order lost: %v, %v", got.Missions[0].ID, got.Missions[1].ID)
	}
	if !got.Missions[1].Completed || !got.Missions[1].Claimed {
		t.Fatal("flags lost in round trip")
	}
}

func TestSaveMissionSetReplacesWholesale(t *testing.T) {
	s := newTestStore(t)

	old := mission.Set{GeneratedDate: "2025-03-09", Missions: []mission.Mission{
		{ID: "old", Type: mission.TypeQuestions, Title: "t", Description: "d", Target: 10, XP: 35},
	}}
	s.SaveMissionSet(old)

	fresh := mission.Set{GeneratedDate: "2025-03-10", Missions: []mission.Mission{
		{ID: "new", Type: mission.TypeSessions, Title: "t", Description: "d", Target: 2, XP: 30},
	}}
	if err := s.SaveMissionSet(fresh); err != nil {
		t.Fatal(err)
	}

	got, _ := s.LoadMissionSet()
	if len(got.Missions) != 1 || got.Missions[0].ID != "new" {
		t.Fatalf("old missions survived the replace: %+v", got.Missions)
	}
}

func TestLoadMissionSetEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.LoadMissionSet()
	if err != nil {
		t.Fatal(err)
	}
	if got.GeneratedDate != "" || len(got.Missions) != 0 {
		t.Fatalf("expected zero set, got %+v", got)
	}
}

// ============================================================
// Streak
// ============================================================

func TestLoadStreakEmptyIsZero(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.LoadStreak()
	if err != nil {
		t.Fatal(err)
	}
	if rec.CurrentStreak != 0 || rec.LastCompletedDate != "" || rec.History != nil {
		t.Fatalf("expected zero record, got %+v", rec)
	}
}

func TestStreakRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := streak.Record{
		CurrentStreak:     7,
		LongestStreak:     12,
		LastCompletedDate: "2025-03-10",
		History:           []string{"2025-03-09", "2025-03-10"},
	}
	if err := s.SaveStreak(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadStreak()
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStreak != 7 || got.LongestStreak != 12 || got.LastCompletedDate != "2025-03-10" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.History) != 2 || got.History[1] != "2025-03-10" {
		t.Fatalf("history mismatch: %v", got.History)
	}
}

func TestStreakEmptyLastDateStoredAsNull(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveStreak(streak.Record{CurrentStreak: 0}); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadStreak()
	if err != nil {
		t.Fatal(err)
	}
	if got.LastCompletedDate != "" {
		t.Fatalf("expected empty date, got %q", got.LastCompletedDate)
	}
}

func TestStreakMalformedHistoryDegrades(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(
		`INSERT INTO streak (id, current_streak, longest_streak, last_completed_date, history)
		 VALUES (1, 3, 3, '2025-03-10', 'not json')`,
	)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := s.LoadStreak()
	if err != nil {
		t.Fatal(err)
	}
	if rec.CurrentStreak != 3 {
		t.Fatalf("numeric fields must survive: %+v", rec)
	}
	if rec.History != nil {
		t.Fatalf("bad history should degrade to nil, got %v", rec.History)
	}
}

// ============================================================
// Battles
// ============================================================

func insertBattle(t *testing.T, s *Store, id string, wrongIDs []string) {
	t.Helper()
	err := s.InsertBattle(battle.Record{
		ID: id, Date: "2025-03-10", Subject: "Math", Mode: "standard",
		TotalQuestions: 5, CorrectAnswers: 3, XPEarned: 30,
		IsVictory: true, WrongQuestionIDs: wrongIDs,
	})
	if err != nil {
		t.Fatalf("insert battle %s: %v", id, err)
	}
}

func TestBattleRoundTrip(t *testing.T) {
	s := newTestStore(t)

	insertBattle(t, s, "b1", []string{"math-01", "math-03"})

	battles, err := s.ListBattles(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(battles) != 1 {
		t.Fatalf("battles = %d", len(battles))
	}
	b := battles[0]
	if b.ID != "b1" || !b.IsVictory || b.CorrectAnswers != 3 {
		t.Fatalf("round trip mismatch: %+v", b)
	}
	if len(b.WrongQuestionIDs) != 2 || b.WrongQuestionIDs[0] != "math-01" {
		t.Fatalf("wrong ids mismatch: %v", b.WrongQuestionIDs)
	}
}

func TestListBattlesNewestFirstAndLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		insertBattle(t, s, fmt.Sprintf("b%d", i), nil)
	}

	battles, err := s.ListBattles(0)
	if err != nil {
		t.Fatal(err)
	}
	if battles[0].ID != "b2" || battles[2].ID != "b0" {
		t.Fatalf("ordering wrong: %v %v %v", battles[0].ID, battles[1].ID, battles[2].ID)
	}

	limited, err := s.ListBattles(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].ID != "b2" {
		t.Fatalf("limit wrong: %+v", limited)
	}
}

func TestInsertBattleTrimsAtCap(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < battle.HistoryCap+10; i++ {
		insertBattle(t, s, fmt.Sprintf("b%03d", i), nil)
	}

	battles, err := s.ListBattles(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(battles) != battle.HistoryCap {
		t.Fatalf("history length = %d, want %d", len(battles), battle.HistoryCap)
	}
	if battles[0].ID != fmt.Sprintf("b%03d", battle.HistoryCap+9) {
		t.Fatalf("newest battle missing, got %s", battles[0].ID)
	}
	// The oldest survivors are the most recent cap-many inserts.
	if battles[len(battles)-1].ID != "b010" {
		t.Fatalf("oldest surviving battle = %s, want b010", battles[len(battles)-1].ID)
	}
}

func TestListBattlesMalformedWrongIDs(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(
		`INSERT INTO battles (id, date, subject, mode, total_questions, correct_answers, xp_earned, total_time, is_victory, wrong_question_ids)
		 VALUES ('bad', '2025-03-10', 'Math', 'standard', 5, 3, 30, 0, 1, '{broken')`,
	)
	if err != nil {
		t.Fatal(err)
	}

	battles, err := s.ListBattles(0)
	if err != nil {
		t.Fatal(err)
	}
	if battles[0].WrongQuestionIDs != nil {
		t.Fatalf("bad json should degrade to nil, got %v", battles[0].WrongQuestionIDs)
	}
}

// ============================================================
// Study sessions
// ============================================================

func TestStudySessionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.InsertStudySession("2025-03-10", "Math", 50, 10)
	if err != nil {
		t.Fatal(err)
	}
	if sess.ID == 0 || sess.Subject != "Math" || sess.FocusMinutes != 50 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestListStudySessionsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	s.InsertStudySession("2025-03-09", "Math", 25, 5)
	s.InsertStudySession("2025-03-10", "Science", 50, 10)

	sessions, err := s.ListStudySessions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 || sessions[0].Subject != "Science" {
		t.Fatalf("ordering wrong: %+v", sessions)
	}

	limited, _ := s.ListStudySessions(1)
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d", len(limited))
	}
}

func TestGetDailyStudyAggregates(t *testing.T) {
	s := newTestStore(t)

	s.InsertStudySession("2025-03-09", "Math", 25, 5)
	s.InsertStudySession("2025-03-09", "Science", 30, 5)
	s.InsertStudySession("2025-03-10", "Math", 50, 10)
	s.InsertStudySession("2025-03-01", "Math", 10, 0) // outside range

	days, err := s.GetDailyStudy("2025-03-09", "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("days = %d", len(days))
	}
	if days[0].Date != "2025-03-09" || days[0].FocusMinutes != 55 || days[0].SessionCount != 2 {
		t.Fatalf("day 1 aggregate wrong: %+v", days[0])
	}
	if days[1].FocusMinutes != 50 || days[1].BreakMinutes != 10 {
		t.Fatalf("day 2 aggregate wrong: %+v", days[1])
	}
}

func TestGetTodayFocusMinutes(t *testing.T) {
	s := newTestStore(t)

	if got, _ := s.GetTodayFocusMinutes("2025-03-10"); got != 0 {
		t.Fatalf("empty day = %d", got)
	}

	s.InsertStudySession("2025-03-10", "Math", 25, 5)
	s.InsertStudySession("2025-03-10", "Science", 15, 0)

	got, err := s.GetTodayFocusMinutes("2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if got != 40 {
		t.Fatalf("today focus = %d, want 40", got)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSetSettingUpserts(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("focus_minutes", "50"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSetting("focus_minutes")
	if got != "50" {
		t.Fatalf("setting = %q", got)
	}

	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 seeded settings, got %d", len(all))
	}
}

func TestGetSettingInt(t *testing.T) {
	s := newTestStore(t)

	if got := s.GetSettingInt("focus_minutes", 99); got != 25 {
		t.Fatalf("seeded focus = %d, want 25", got)
	}
	if got := s.GetSettingInt("no_such_key", 7); got != 7 {
		t.Fatalf("missing key = %d, want fallback", got)
	}

	if err := s.SetSetting("break_minutes", "banana"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetSettingInt("break_minutes", 5); got != 5 {
		t.Fatalf("non-numeric value = %d, want fallback", got)
	}
	if err := s.SetSetting("break_minutes", "-3"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetSettingInt("break_minutes", 5); got != 5 {
		t.Fatalf("non-positive value = %d, want fallback", got)
	}
}
