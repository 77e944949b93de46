package mission

import "math"

// Template is an unscaled mission blueprint.
type Template struct {
	Type       Type
	BaseTarget int
	BaseXP     int
}

// templatePool is the fixed pool generation draws from. One template per
// type, so a day's set never repeats a type.
var templatePool = []Template{
	{Type: TypeFocusMinutes, BaseTarget: 50, BaseXP: 40},
	{Type: TypeQuestions, BaseTarget: 15, BaseXP: 35},
	{Type: TypeCorrectAnswers, BaseTarget: 10, BaseXP: 40},
	{Type: TypeBattles, BaseTarget: 2, BaseXP: 45},
	{Type: TypeBattleWins, BaseTarget: 1, BaseXP: 50},
	{Type: TypeSessions, BaseTarget: 2, BaseXP: 30},
}

// CountForLevel is how many missions a day's set holds.
func CountForLevel(level int) int {
	if level >= 5 {
		return 3
	}
	return 2
}

// DifficultyMultiplier scales targets and rewards with level.
func DifficultyMultiplier(level int) float64 {
	if level < 1 {
		level = 1
	}
	return 1 + float64(level-1)*0.15
}

// scale applies the difficulty multiplier, rounding up.
func scale(base int, multiplier float64) int {
	return int(math.Ceil(float64(base) * multiplier))
}
