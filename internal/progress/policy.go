package progress

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/typemaster/internal/model"
)

// Policy names accepted by PolicyByName.
const (
	PolicyCurve  = "curve"
	PolicyLinear = "linear"
)

const (
	defaultAccuracyBonusThreshold = 95
	accuracyBonus                 = 20
	nominalSessionSeconds         = 60
	expShare                      = 0.8
	linearScoreFactor             = 10
	linearPointsPerLevel          = 1000
)

// ScoringPolicy converts session results into score, experience and level.
type ScoringPolicy interface {
	Name() string
	// Score returns the points a session earns.
	Score(res model.SessionResult) int
	// ExpGain returns the experience a session score grants.
	ExpGain(score int) int
	// Level returns the level implied by p under this policy.
	Level(p model.UserProgress) int
}

// ExperienceCurve levels on a square-root experience curve.
type ExperienceCurve struct {
	AccuracyBonusThreshold int
}

// Name implements ScoringPolicy.
func (ExperienceCurve) Name() string { return PolicyCurve }

// Score implements ScoringPolicy.
func (c ExperienceCurve) Score(res model.SessionResult) int {
	threshold := c.AccuracyBonusThreshold
	if threshold <= 0 {
		threshold = defaultAccuracyBonusThreshold
	}
	base := round(float64(res.WPM) * float64(res.Accuracy) / 100 * float64(res.CorrectWords))
	timeBonus := round((nominalSessionSeconds - res.ElapsedSeconds) / 10)
	if timeBonus < 0 {
		timeBonus = 0
	}
	bonus := 0
	if res.Accuracy >= threshold {
		bonus = accuracyBonus
	}
	return base + timeBonus + bonus
}

// ExpGain implements ScoringPolicy.
func (ExperienceCurve) ExpGain(score int) int {
	return round(float64(score) * expShare)
}

// Level implements ScoringPolicy.
func (ExperienceCurve) Level(p model.UserProgress) int {
	return LevelFromExperience(p.Experience)
}

// Linear is the legacy scheme: one level per thousand total points.
type Linear struct{}

// Name implements ScoringPolicy.
func (Linear) Name() string { return PolicyLinear }

// Score implements ScoringPolicy.
func (Linear) Score(res model.SessionResult) int {
	return round(float64(res.WPM) * float64(res.Accuracy) / 100 * linearScoreFactor)
}

// ExpGain implements ScoringPolicy. Experience mirrors score.
func (Linear) ExpGain(score int) int {
	return score
}

// Level implements ScoringPolicy.
func (Linear) Level(p model.UserProgress) int {
	if p.TotalScore < 0 {
		return 1
	}
	return p.TotalScore/linearPointsPerLevel + 1
}

// PolicyByName returns the named policy. An empty name selects the experience curve.
func PolicyByName(name string, accuracyBonusThreshold int) (ScoringPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyCurve:
		return ExperienceCurve{AccuracyBonusThreshold: accuracyBonusThreshold}, nil
	case PolicyLinear:
		return Linear{}, nil
	}
	return nil, fmt.Errorf("unknown scoring policy %q (want %s or %s)", name, PolicyCurve, PolicyLinear)
}
