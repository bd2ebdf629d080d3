package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typemaster/internal/gating"
	"github.com/verte-zerg/typemaster/internal/model"
	levels "github.com/verte-zerg/typemaster/internal/progress"
)

func TestRenderLeaderboard(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.LeaderboardEntry{
		{Name: "ada", Score: 621, WPM: 60, Accuracy: 100, Date: base.Add(time.Hour)},
		{Name: "Player Level 1", Score: 80, WPM: 20, Accuracy: 80, Date: base},
	}
	var buf bytes.Buffer
	if err := RenderLeaderboard(&buf, entries); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[1], "1 ada") || !strings.HasPrefix(lines[2], "2 Player Level 1") {
		t.Fatalf("unexpected ranking:\n%s", out)
	}
	if !strings.Contains(out, "Avg WPM: 40.0") || !strings.Contains(out, "Trend:  @") {
		t.Fatalf("unexpected summary:\n%s", out)
	}

	buf.Reset()
	if err := RenderLeaderboard(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if buf.String() != "No sessions recorded yet.\n" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestRenderModesMarksLockedEntries(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderModes(&buf, gating.DefaultTable(), 3); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "words-medium         3 unlocked") {
		t.Fatalf("words-medium should be unlocked:\n%s", out)
	}
	if !strings.Contains(out, "sentences-medium     4 locked") {
		t.Fatalf("sentences-medium should be locked:\n%s", out)
	}
	if !strings.Contains(out, "technology     5 locked") {
		t.Fatalf("technology should be locked:\n%s", out)
	}
}

func TestRenderProgress(t *testing.T) {
	p := model.UserProgress{
		Level:            4,
		Experience:       497,
		TotalScore:       621,
		BestWPM:          60,
		BestAccuracy:     100,
		SessionsPlayed:   1,
		Achievements:     []string{"first-session"},
		AchievementCount: 1,
		UnlockedThemes:   []string{"animals", "food", "nature"},
	}
	var buf bytes.Buffer
	if err := RenderProgress(&buf, p, levels.ExperienceCurve{}, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Level 4 · Skilled", "303 to next level (curve policy)", "animals, food, nature", "First Steps"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderMistakes(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMistakes(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No words to review.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	buf.Reset()
	words := []model.Word{{Text: "glacier", Difficulty: model.Medium, Meaning: "a slow moving mass of ice"}}
	if err := RenderMistakes(&buf, words); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "glacier medium     a slow moving mass of ice") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 2, 3}); got != " +@" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{5, 5}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
}

func TestSelectWeakChars(t *testing.T) {
	words := []model.Word{{Text: "tree"}, {Text: "river"}, {Text: "err != nil"}}
	weak := SelectWeakChars(words, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak chars, got %d", len(weak))
	}
	if _, ok := weak['r']; !ok {
		t.Fatalf("expected r to be weak: %v", weak)
	}
	if _, ok := weak['e']; !ok {
		t.Fatalf("expected e to be weak: %v", weak)
	}
	if len(SelectWeakChars(nil, 3)) != 0 {
		t.Fatalf("expected empty set")
	}
}
