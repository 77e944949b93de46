package streak

// Milestone is a fixed streak length that unlocks a named achievement.
// The set is closed; display metadata resolves by exhaustive matching.
type Milestone int

const (
	MilestoneNone    Milestone = 0
	MilestoneWeek    Milestone = 7
	MilestoneTwoWeek Milestone = 14
	MilestoneMonth   Milestone = 30
	MilestoneSixty   Milestone = 60
	MilestoneCentury Milestone = 100
)

// AllMilestones returns the fixed milestones in ascending order.
func AllMilestones() []Milestone {
	return []Milestone{MilestoneWeek, MilestoneTwoWeek, MilestoneMonth, MilestoneSixty, MilestoneCentury}
}

// Days is the streak length the milestone requires.
func (m Milestone) Days() int { return int(m) }

// AchievementName returns the unlocked achievement's display name.
func (m Milestone) AchievementName() string {
	switch m {
	case MilestoneWeek:
		return "Week Warrior"
	case MilestoneTwoWeek:
		return "Fortnight Focus"
	case MilestoneMonth:
		return "Monthly Master"
	case MilestoneSixty:
		return "Habit Architect"
	case MilestoneCentury:
		return "Century Scholar"
	default:
		return ""
	}
}

// Icon returns the display icon for the milestone.
func (m Milestone) Icon() string {
	switch m {
	case MilestoneWeek:
		return "🔥"
	case MilestoneTwoWeek:
		return "⚡"
	case MilestoneMonth:
		return "🌙"
	case MilestoneSixty:
		return "🏛"
	case MilestoneCentury:
		return "💯"
	default:
		return ""
	}
}

// milestoneFor returns the milestone exactly equal to the streak length,
// or MilestoneNone. Exact-match semantics: a milestone skipped over by a
// broken streak cannot be caught up to later.
func milestoneFor(streak int) Milestone {
	for _, m := range AllMilestones() {
		if streak == m.Days() {
			return m
		}
	}
	return MilestoneNone
}

// MilestoneStatus describes one milestone's unlock state.
type MilestoneStatus struct {
	Milestone       Milestone
	Unlocked        bool
	ProgressPercent float64
}
