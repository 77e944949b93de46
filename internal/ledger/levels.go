package ledger

// xpThresholds[i] is the XP floor of level i+1. Level 1 starts at 0 and the
// table is strictly increasing.
var xpThresholds = []int{0, 100, 250, 450, 700, 1000, 1400, 1900, 2500, 3200}

// levelTitles[i] is the title for level i+1. Levels beyond the table keep
// the last title.
var levelTitles = []string{
	"Novice",
	"Beginner",
	"Apprentice",
	"Student",
	"Scholar",
	"Adept",
	"Expert",
	"Sage",
	"Master",
	"Grandmaster",
}

// MaxLevel is the highest level defined by the threshold table.
const MaxLevel = 10

// LevelOf returns the greatest level whose XP floor is at or below xp.
func LevelOf(xp int) int {
	level := 1
	for i, floor := range xpThresholds {
		if xp >= floor {
			level = i + 1
		}
	}
	return level
}

// TitleOf returns the title for a level, clamped to the last defined title.
func TitleOf(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(levelTitles) {
		level = len(levelTitles)
	}
	return levelTitles[level-1]
}

// ProgressPercent reports how far xp has advanced through its current
// level, in [0, 100]. At the maximum defined level there is no next floor,
// so the result is 100.
func ProgressPercent(xp int) float64 {
	level := LevelOf(xp)
	if level >= len(xpThresholds) {
		return 100
	}
	floor := xpThresholds[level-1]
	next := xpThresholds[level]
	pct := float64(xp-floor) / float64(next-floor) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// NextThreshold returns the XP floor of the next level, or the current xp
// itself when already at the maximum level.
func NextThreshold(xp int) int {
	level := LevelOf(xp)
	if level >= len(xpThresholds) {
		return xp
	}
	return xpThresholds[level]
}
