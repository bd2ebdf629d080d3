// Package progress turns finished sessions into persisted player progression.
package progress

import (
	"math"

	"github.com/verte-zerg/typemaster/internal/model"
)

const expPerLevelUnit = 50

var levelTitles = []string{
	"Beginner",
	"Novice",
	"Apprentice",
	"Skilled",
	"Expert",
	"Master",
}

// LevelFromExperience returns floor(sqrt(exp/50)) + 1.
func LevelFromExperience(exp int) int {
	if exp < 0 {
		exp = 0
	}
	// floor(sqrt(x)) == floor(sqrt(floor(x))) for x >= 0.
	return isqrt(exp/expPerLevelUnit) + 1
}

// ExpForLevel returns the experience needed to reach level.
func ExpForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * expPerLevelUnit
}

// ExpToNextLevel returns how much experience is missing for the next level.
func ExpToNextLevel(exp int) int {
	return ExpForLevel(LevelFromExperience(exp)+1) - exp
}

// ProgressPercent returns how far exp is between its level and the next, in [0,100].
func ProgressPercent(exp int) float64 {
	level := LevelFromExperience(exp)
	lo := ExpForLevel(level)
	hi := ExpForLevel(level + 1)
	pct := float64(exp-lo) / float64(hi-lo) * 100
	return math.Min(math.Max(pct, 0), 100)
}

// LevelProgress reports how far p is into its current level under policy and
// how many points are still missing.
func LevelProgress(policy ScoringPolicy, p model.UserProgress) (percent float64, remaining int) {
	if _, ok := policy.(Linear); ok {
		into := max(p.TotalScore, 0) % linearPointsPerLevel
		return float64(into) / linearPointsPerLevel * 100, linearPointsPerLevel - into
	}
	return ProgressPercent(p.Experience), ExpToNextLevel(p.Experience)
}

// LevelTitle names a level for display. Levels past the table keep the last title.
func LevelTitle(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(levelTitles) {
		return levelTitles[len(levelTitles)-1]
	}
	return levelTitles[level-1]
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
