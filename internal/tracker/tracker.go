// Package tracker computes live typing statistics for a single target text.
package tracker

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typemaster/internal/clock"
	"github.com/verte-zerg/typemaster/internal/model"
)

const charsPerWord = 5.0

var (
	// ErrInvalidSessionStart is returned when a session is started with empty text.
	ErrInvalidSessionStart = errors.New("target text is empty")
	// ErrInputOverflow is returned when input is longer than the target.
	ErrInputOverflow = errors.New("input is longer than target text")
	// ErrSessionInactive is returned when input arrives outside a running session.
	ErrSessionInactive = errors.New("no active session")
)

// Stats is the live read model of a session.
type Stats struct {
	ElapsedSeconds float64
	WPM            int
	Accuracy       int
	CorrectChars   int
	TotalChars     int
}

// Tracker follows one typing session at a time.
type Tracker struct {
	clock      clock.Clock
	onComplete func(model.SessionResult)

	sessionID string
	target    []rune
	input     []rune
	startedAt time.Time
	active    bool

	stats      Stats
	mistakes   []rune
	mistakeSet map[rune]struct{}
	result     *model.SessionResult
}

// New returns a Tracker reading time from clk. A nil clk uses the system clock.
func New(clk clock.Clock) *Tracker {
	if clk == nil {
		clk = clock.System{}
	}
	t := &Tracker{clock: clk}
	t.Reset()
	return t
}

// OnComplete registers fn to receive the result when a session completes.
func (t *Tracker) OnComplete(fn func(model.SessionResult)) {
	t.onComplete = fn
}

// Start begins a new session for target, discarding any previous state.
func (t *Tracker) Start(target string) error {
	if target == "" {
		return ErrInvalidSessionStart
	}
	t.Reset()
	t.sessionID = uuid.NewString()
	t.target = []rune(target)
	t.startedAt = t.clock.Now()
	t.active = true
	return nil
}

// Update replaces the typed input and recomputes statistics.
// Every rune the input grows by counts as one keystroke event.
func (t *Tracker) Update(input string) error {
	if !t.active {
		return ErrSessionInactive
	}
	runes := []rune(input)
	if len(runes) > len(t.target) {
		return ErrInputOverflow
	}

	prevLen := len(t.input)
	if len(runes) > prevLen {
		t.stats.TotalChars += len(runes) - prevLen
		for i := prevLen; i < len(runes); i++ {
			if runes[i] != t.target[i] {
				t.addMistake(t.target[i])
			}
		}
	}
	t.input = runes

	correct := 0
	for i, r := range runes {
		if r == t.target[i] {
			correct++
		}
	}
	t.stats.CorrectChars = correct
	t.stats.Accuracy = accuracy(correct, t.stats.TotalChars)
	t.sample()

	if len(runes) == len(t.target) && string(runes) == string(t.target) {
		t.complete()
	}
	return nil
}

// Tick refreshes elapsed time and WPM between keystrokes.
func (t *Tracker) Tick() {
	if !t.active {
		return
	}
	t.sample()
}

// Reset clears all session state. It is safe to call at any time.
func (t *Tracker) Reset() {
	t.sessionID = ""
	t.target = nil
	t.input = nil
	t.startedAt = time.Time{}
	t.active = false
	t.stats = Stats{Accuracy: 100}
	t.mistakes = nil
	t.mistakeSet = map[rune]struct{}{}
	t.result = nil
}

// Stats returns the current statistics.
func (t *Tracker) Stats() Stats {
	return t.stats
}

// Input returns the text typed so far.
func (t *Tracker) Input() string {
	return string(t.input)
}

// Target returns the session target text.
func (t *Tracker) Target() string {
	return string(t.target)
}

// Active reports whether a session is running.
func (t *Tracker) Active() bool {
	return t.active
}

// Mistakes returns the distinct expected characters that were mistyped, oldest first.
func (t *Tracker) Mistakes() []rune {
	out := make([]rune, len(t.mistakes))
	copy(out, t.mistakes)
	return out
}

// LastMistake returns the most recently recorded mistake.
func (t *Tracker) LastMistake() (model.CharMistake, bool) {
	if len(t.mistakes) == 0 {
		return model.CharMistake{}, false
	}
	return model.CharMistake{Char: t.mistakes[len(t.mistakes)-1]}, true
}

// Completed returns the result of the finished session, if any.
func (t *Tracker) Completed() (model.SessionResult, bool) {
	if t.result == nil {
		return model.SessionResult{}, false
	}
	return *t.result, true
}

func (t *Tracker) addMistake(expected rune) {
	if _, ok := t.mistakeSet[expected]; ok {
		// Keep the latest occurrence last for LastMistake.
		for i, r := range t.mistakes {
			if r == expected {
				t.mistakes = append(t.mistakes[:i], t.mistakes[i+1:]...)
				break
			}
		}
	}
	t.mistakeSet[expected] = struct{}{}
	t.mistakes = append(t.mistakes, expected)
}

func (t *Tracker) sample() {
	elapsed := t.clock.Now().Sub(t.startedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	t.stats.ElapsedSeconds = elapsed
	t.stats.WPM = WPM(len(t.input), elapsed)
}

func (t *Tracker) complete() {
	t.active = false
	result := model.SessionResult{
		SessionID:      t.sessionID,
		WPM:            t.stats.WPM,
		Accuracy:       t.stats.Accuracy,
		CorrectWords:   len(strings.Fields(string(t.target))),
		ElapsedSeconds: t.stats.ElapsedSeconds,
		Mistakes:       t.Mistakes(),
	}
	t.result = &result
	if t.onComplete != nil {
		t.onComplete(result)
	}
}

// WPM converts a character count and elapsed seconds into words per minute.
func WPM(chars int, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	minutes := elapsedSeconds / 60
	return round((float64(chars) / charsPerWord) / minutes)
}

func accuracy(correct, total int) int {
	if total == 0 {
		return 100
	}
	return round(float64(correct) / float64(total) * 100)
}

// round rounds half up like the scoring rules expect.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
