package progress

import (
	"testing"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

func TestLevelFromExperience(t *testing.T) {
	cases := map[int]int{
		-10:  1,
		0:    1,
		49:   1,
		50:   2,
		199:  2,
		200:  3,
		497:  4,
		450:  4,
		2000: 7,
	}
	for exp, want := range cases {
		if got := LevelFromExperience(exp); got != want {
			t.Fatalf("LevelFromExperience(%d) = %d, want %d", exp, got, want)
		}
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for level := 1; level <= 500; level++ {
		if got := LevelFromExperience(ExpForLevel(level)); got != level {
			t.Fatalf("round trip for level %d returned %d", level, got)
		}
		if level > 1 && LevelFromExperience(ExpForLevel(level)-1) != level-1 {
			t.Fatalf("one exp below level %d must stay at %d", level, level-1)
		}
	}
}

func TestLevelIsMonotonic(t *testing.T) {
	prev := LevelFromExperience(0)
	for exp := 1; exp <= 100000; exp += 7 {
		cur := LevelFromExperience(exp)
		if cur < prev {
			t.Fatalf("level decreased at exp %d", exp)
		}
		prev = cur
	}
}

func TestExpToNextLevel(t *testing.T) {
	if got := ExpToNextLevel(0); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := ExpToNextLevel(497); got != 800-497 {
		t.Fatalf("expected %d, got %d", 800-497, got)
	}
}

func TestProgressPercent(t *testing.T) {
	if got := ProgressPercent(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ProgressPercent(125); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestLevelTitle(t *testing.T) {
	if LevelTitle(1) != "Beginner" || LevelTitle(4) != "Skilled" || LevelTitle(42) != "Master" {
		t.Fatalf("unexpected titles")
	}
}

func TestExperienceCurveScore(t *testing.T) {
	policy := ExperienceCurve{}
	cases := []struct {
		name string
		res  model.SessionResult
		want int
	}{
		{"worked example", model.SessionResult{WPM: 60, Accuracy: 100, CorrectWords: 10, ElapsedSeconds: 50}, 621},
		{"slow session has no time bonus", model.SessionResult{WPM: 20, Accuracy: 80, CorrectWords: 5, ElapsedSeconds: 120}, 80},
		{"bonus threshold is inclusive", model.SessionResult{WPM: 10, Accuracy: 95, CorrectWords: 2, ElapsedSeconds: 60}, 39},
	}
	for _, tc := range cases {
		if got := policy.Score(tc.res); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
	if got := policy.ExpGain(621); got != 497 {
		t.Fatalf("expected exp gain 497, got %d", got)
	}
}

func TestCustomAccuracyBonusThreshold(t *testing.T) {
	policy := ExperienceCurve{AccuracyBonusThreshold: 99}
	res := model.SessionResult{WPM: 10, Accuracy: 95, CorrectWords: 2, ElapsedSeconds: 60}
	if got := policy.Score(res); got != 19 {
		t.Fatalf("expected no bonus below threshold, got %d", got)
	}
}

func TestPolicyByName(t *testing.T) {
	for name, want := range map[string]string{"": PolicyCurve, "curve": PolicyCurve, " Linear ": PolicyLinear} {
		p, err := PolicyByName(name, 0)
		if err != nil {
			t.Fatalf("policy %q: %v", name, err)
		}
		if p.Name() != want {
			t.Fatalf("policy %q: expected %s, got %s", name, want, p.Name())
		}
	}
	if _, err := PolicyByName("quadratic", 0); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestInsertLeaderboardKeepsInsertionOrderOnTies(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var board []model.LeaderboardEntry
	for i, score := range []int{100, 300, 100, 300} {
		board = InsertLeaderboard(board, model.LeaderboardEntry{Name: string(rune('a' + i)), Score: score, Date: base}, 3)
	}
	if len(board) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(board))
	}
	got := board[0].Name + board[1].Name + board[2].Name
	if got != "bda" {
		t.Fatalf("expected order bda, got %s", got)
	}
}

func TestLevelProgressFollowsPolicy(t *testing.T) {
	p := model.UserProgress{Experience: 125, TotalScore: 2250}
	pct, remaining := LevelProgress(ExperienceCurve{}, p)
	if pct != 50 || remaining != 75 {
		t.Fatalf("curve: expected 50%% and 75 remaining, got %v and %d", pct, remaining)
	}
	pct, remaining = LevelProgress(Linear{}, p)
	if pct != 25 || remaining != 750 {
		t.Fatalf("linear: expected 25%% and 750 remaining, got %v and %d", pct, remaining)
	}
}
