package mission

import "fmt"

// Type identifies what a mission counts. The set is closed; display
// metadata is resolved by exhaustive matching, never by string lookup
// tables.
type Type string

const (
	TypeFocusMinutes   Type = "focus_minutes"
	TypeQuestions      Type = "questions"
	TypeCorrectAnswers Type = "correct_answers"
	TypeBattles        Type = "battles"
	TypeBattleWins     Type = "battle_wins"
	TypeSessions       Type = "sessions"
)

// AllTypes returns every mission type in display order.
func AllTypes() []Type {
	return []Type{
		TypeFocusMinutes,
		TypeQuestions,
		TypeCorrectAnswers,
		TypeBattles,
		TypeBattleWins,
		TypeSessions,
	}
}

// DisplayName returns a short human-readable label.
func (t Type) DisplayName() string {
	switch t {
	case TypeFocusMinutes:
		return "Deep Work"
	case TypeQuestions:
		return "Question Grinder"
	case TypeCorrectAnswers:
		return "Sharp Mind"
	case TypeBattles:
		return "Challenger"
	case TypeBattleWins:
		return "Victor"
	case TypeSessions:
		return "Back for More"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the mission type.
func (t Type) Icon() string {
	switch t {
	case TypeFocusMinutes:
		return "⏱"
	case TypeQuestions:
		return "❓"
	case TypeCorrectAnswers:
		return "✓"
	case TypeBattles:
		return "⚔"
	case TypeBattleWins:
		return "🏆"
	case TypeSessions:
		return "🔁"
	default:
		return "✦"
	}
}

// Describe phrases the mission goal for a concrete target.
func (t Type) Describe(target int) string {
	switch t {
	case TypeFocusMinutes:
		return fmt.Sprintf("Study for %d focused minutes", target)
	case TypeQuestions:
		return fmt.Sprintf("Answer %d quiz questions", target)
	case TypeCorrectAnswers:
		return fmt.Sprintf("Get %d answers right", target)
	case TypeBattles:
		return fmt.Sprintf("Finish %d quiz battles", target)
	case TypeBattleWins:
		return fmt.Sprintf("Win %d quiz battles", target)
	case TypeSessions:
		return fmt.Sprintf("Complete %d study sessions", target)
	default:
		return fmt.Sprintf("Reach %d", target)
	}
}

// Mission is one day-scoped, level-scaled task.
type Mission struct {
	ID          string
	Type        Type
	Title       string
	Description string
	Target      int
	Current     int
	XP          int
	Completed   bool
	Claimed     bool
}

// Set is the active day's mission set. It is replaced wholesale when the
// calendar day changes.
type Set struct {
	GeneratedDate string
	Missions      []Mission
}

// AllCompleted reports whether every mission in the set is completed.
// Recomputed on demand; an empty set is never considered complete.
func (s Set) AllCompleted() bool {
	if len(s.Missions) == 0 {
		return false
	}
	for _, m := range s.Missions {
		if !m.Completed {
			return false
		}
	}
	return true
}

// AllClaimed reports whether every mission's reward has been claimed.
func (s Set) AllClaimed() bool {
	if len(s.Missions) == 0 {
		return false
	}
	for _, m := range s.Missions {
		if !m.Claimed {
			return false
		}
	}
	return true
}
