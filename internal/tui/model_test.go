package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/verte-zerg/typemaster/internal/catalog"
	"github.com/verte-zerg/typemaster/internal/generator"
	"github.com/verte-zerg/typemaster/internal/progress"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/tracker"
)

type stepClock struct {
	now time.Time
}

// Now advances one second per call so every keystroke takes time.
func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestModel(t *testing.T, opts Options) (*Model, *progress.Ledger) {
	t.Helper()
	cat, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	logger, _ := test.NewNullLogger()
	clk := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	ledger := progress.NewLedger(store.NewMemoryStore(), progress.Options{Clock: clk, Logger: logger})
	m, err := NewModel(context.Background(), opts, tracker.New(clk), ledger, generator.New(cat), logger)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m, ledger
}

func typeString(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingTargetRecordsSession(t *testing.T) {
	m, ledger := newTestModel(t, Options{Mode: "words-easy", Words: 3})
	if len(strings.Fields(string(m.target))) != 3 {
		t.Fatalf("expected three words, got %q", string(m.target))
	}

	typeString(m, string(m.target))
	if m.phase != phaseResults {
		t.Fatalf("expected results after typing the full target")
	}
	if m.result.Accuracy != 100 || m.result.CorrectWords != 3 {
		t.Fatalf("unexpected result: %+v", m.result)
	}
	p := ledger.LoadProgress(context.Background())
	if p.SessionsPlayed != 1 || p.TotalScore != m.outcome.Score {
		t.Fatalf("session not recorded: %+v", p)
	}
	if len(ledger.Leaderboard(context.Background())) != 1 {
		t.Fatalf("expected one leaderboard entry")
	}
	if !strings.Contains(m.View(), "Session complete") {
		t.Fatalf("results view missing heading")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseTyping || len(m.input) != 0 || m.tracker.Active() {
		t.Fatalf("enter should prepare a fresh session")
	}
}

func TestMistakesInWordModeAreSavedForReview(t *testing.T) {
	m, ledger := newTestModel(t, Options{Mode: "words-easy", Words: 2})
	target := string(m.target)
	first := m.text.Words[0]

	wrong := 'X'
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{wrong}})
	if last, ok := m.tracker.LastMistake(); !ok || last.Char != []rune(target)[0] {
		t.Fatalf("expected last mistake to be the expected rune")
	}
	if !strings.Contains(m.renderFooter(), "last miss") {
		t.Fatalf("footer should show the last mistake")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	typeString(m, target)

	if m.phase != phaseResults {
		t.Fatalf("expected results")
	}
	if m.result.Accuracy == 100 {
		t.Fatalf("mistake should lower accuracy")
	}
	p := ledger.LoadProgress(context.Background())
	found := false
	for _, w := range p.MistakeWords {
		if w.Text == first.Text {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q on the review list, got %+v", first.Text, p.MistakeWords)
	}
}

func TestOverflowInputIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, Options{Mode: "sentences-easy"})
	target := string(m.target)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(target + "extra")})
	if m.phase != phaseResults {
		t.Fatalf("expected completion from a pasted target")
	}
	if string(m.input) != target {
		t.Fatalf("overflow must be dropped, got %q", string(m.input))
	}
}

func TestReviewClearsCleanWords(t *testing.T) {
	m, ledger := newTestModel(t, Options{Mode: "words-easy", Words: 2})
	ctx := context.Background()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	typeString(m, string(m.target))
	if len(ledger.LoadProgress(ctx).MistakeWords) == 0 {
		t.Fatalf("expected a word to review")
	}

	review := newTestModelWithLedger(t, ledger, Options{Review: true, Words: 1})
	typeString(review, string(review.target))
	if len(review.mastered) != 1 {
		t.Fatalf("expected the reviewed word to be cleared, got %v", review.mastered)
	}
	if len(ledger.LoadProgress(ctx).MistakeWords) != 0 {
		t.Fatalf("review list should be empty")
	}
}

func TestLockedThemeContentIsNotOffered(t *testing.T) {
	m, _ := newTestModel(t, Options{Mode: "words-easy", Words: 30})
	for _, w := range m.text.Words {
		if w.Theme != "animals" && w.Theme != "food" {
			t.Fatalf("word %q from locked theme %q", w.Text, w.Theme)
		}
	}
}

func newTestModelWithLedger(t *testing.T, ledger *progress.Ledger, opts Options) *Model {
	t.Helper()
	cat, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	logger, _ := test.NewNullLogger()
	clk := &stepClock{now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	m, err := NewModel(context.Background(), opts, tracker.New(clk), ledger, generator.New(cat), logger)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}
