package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/typemaster/internal/clock"
	"github.com/verte-zerg/typemaster/internal/gating"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/store"
)

// DefaultStreakThreshold is the minimum accuracy that extends a streak.
const DefaultStreakThreshold = 90

// ErrInvalidResult is returned for session results outside their valid ranges.
var ErrInvalidResult = errors.New("invalid session result")

// Options configures a Ledger. Zero values select defaults.
type Options struct {
	Policy          ScoringPolicy
	Gating          *gating.Table
	PlayerName      string
	StreakThreshold int
	LeaderboardSize int
	Clock           clock.Clock
	Logger          *logrus.Logger
}

// Outcome describes what a recorded session changed.
type Outcome struct {
	LeveledUp       bool
	OldLevel        int
	NewLevel        int
	Score           int
	ExpGain         int
	NewAchievements []string
}

// Ledger owns the persisted progress record and leaderboard.
// Every read-modify-write cycle runs under one mutex.
type Ledger struct {
	mu       sync.Mutex
	store    store.KeyValueStore
	policy   ScoringPolicy
	table    gating.Table
	name     string
	streak   int
	size     int
	clock    clock.Clock
	log      *logrus.Logger
	validate *validator.Validate
}

// NewLedger builds a Ledger over st.
func NewLedger(st store.KeyValueStore, opts Options) *Ledger {
	l := &Ledger{
		store:    st,
		policy:   opts.Policy,
		name:     strings.TrimSpace(opts.PlayerName),
		streak:   opts.StreakThreshold,
		size:     opts.LeaderboardSize,
		clock:    opts.Clock,
		log:      opts.Logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	if l.policy == nil {
		l.policy = ExperienceCurve{}
	}
	if opts.Gating != nil {
		l.table = *opts.Gating
	} else {
		l.table = gating.DefaultTable()
	}
	if l.streak <= 0 {
		l.streak = DefaultStreakThreshold
	}
	if l.size <= 0 {
		l.size = DefaultLeaderboardSize
	}
	if l.clock == nil {
		l.clock = clock.System{}
	}
	if l.log == nil {
		l.log = logrus.StandardLogger()
	}
	return l
}

// Policy returns the active scoring policy.
func (l *Ledger) Policy() ScoringPolicy {
	return l.policy
}

// DefaultProgress returns the record of a player who has never played.
func (l *Ledger) DefaultProgress() model.UserProgress {
	p := model.UserProgress{
		Level:        1,
		MistakeWords: []model.Word{},
		Achievements: []string{},
	}
	p.UnlockedModes = l.table.UnlockedModes(1)
	p.UnlockedThemes = l.table.UnlockedThemes(1)
	return p
}

// LoadProgress returns the stored progress, or defaults when it is missing or unreadable.
func (l *Ledger) LoadProgress(ctx context.Context) model.UserProgress {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadProgress(ctx)
}

// Leaderboard returns the ranked leaderboard, or an empty list when unreadable.
func (l *Ledger) Leaderboard(ctx context.Context) []model.LeaderboardEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLeaderboard(ctx)
}

// RecordSession applies a finished session to progress and the leaderboard.
// Storage failures are logged and do not fail the call.
func (l *Ledger) RecordSession(ctx context.Context, res model.SessionResult) (Outcome, error) {
	if err := l.validate.Struct(res); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.loadProgress(ctx)
	score := l.policy.Score(res)
	gain := l.policy.ExpGain(score)

	oldLevel := p.Level
	p.Experience += gain
	p.TotalScore += score
	p.Level = l.policy.Level(p)
	p.SessionsPlayed++
	if res.WPM > p.BestWPM {
		p.BestWPM = res.WPM
	}
	if res.Accuracy > p.BestAccuracy {
		p.BestAccuracy = res.Accuracy
	}
	if res.Accuracy >= l.streak {
		p.Streak++
	} else {
		p.Streak = 0
	}
	l.applyUnlocks(&p)

	unlocked := EvaluateAchievements(p, res)
	p.Achievements = append(p.Achievements, unlocked...)
	p.AchievementCount = len(p.Achievements)

	l.saveJSON(ctx, store.KeyUserProgress, p)

	entry := model.LeaderboardEntry{
		ID:       res.SessionID,
		Name:     l.playerName(p.Level),
		WPM:      res.WPM,
		Accuracy: res.Accuracy,
		Score:    score,
		Date:     l.clock.Now().UTC(),
	}
	board := InsertLeaderboard(l.loadLeaderboard(ctx), entry, l.size)
	l.saveJSON(ctx, store.KeyLeaderboard, board)

	l.log.WithFields(logrus.Fields{
		"session": res.SessionID,
		"score":   score,
		"exp":     p.Experience,
		"level":   p.Level,
	}).Debug("session recorded")

	return Outcome{
		LeveledUp:       p.Level > oldLevel,
		OldLevel:        oldLevel,
		NewLevel:        p.Level,
		Score:           score,
		ExpGain:         gain,
		NewAchievements: unlocked,
	}, nil
}

// RecordMistake adds entry to the review list unless its text is already there.
// It reports whether the list changed.
func (l *Ledger) RecordMistake(ctx context.Context, entry model.MistakeEntry) bool {
	var word model.Word
	switch e := entry.(type) {
	case model.WordMistake:
		word = e.Word
	case model.CharMistake:
		word = model.Word{Text: string(e.Char), Difficulty: model.Easy}
	default:
		return false
	}
	if word.Text == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.loadProgress(ctx)
	for _, w := range p.MistakeWords {
		if w.Text == word.Text {
			return false
		}
	}
	p.MistakeWords = append(p.MistakeWords, word)
	l.saveJSON(ctx, store.KeyUserProgress, p)
	return true
}

// RemoveMistake drops text from the review list and reports whether it was present.
func (l *Ledger) RemoveMistake(ctx context.Context, text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.loadProgress(ctx)
	kept := p.MistakeWords[:0]
	removed := false
	for _, w := range p.MistakeWords {
		if w.Text == text {
			removed = true
			continue
		}
		kept = append(kept, w)
	}
	if !removed {
		return false
	}
	p.MistakeWords = kept
	l.saveJSON(ctx, store.KeyUserProgress, p)
	return true
}

func (l *Ledger) loadProgress(ctx context.Context) model.UserProgress {
	p := l.DefaultProgress()
	raw, ok, err := l.store.Get(ctx, store.KeyUserProgress)
	if err != nil {
		l.log.WithError(err).WithField("key", store.KeyUserProgress).Warn("failed to load progress; starting fresh")
		return p
	}
	if !ok {
		return p
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		l.log.WithError(err).WithField("key", store.KeyUserProgress).Warn("corrupted progress; starting fresh")
		return l.DefaultProgress()
	}
	l.normalize(&p)
	return p
}

func (l *Ledger) loadLeaderboard(ctx context.Context) []model.LeaderboardEntry {
	raw, ok, err := l.store.Get(ctx, store.KeyLeaderboard)
	if err != nil {
		l.log.WithError(err).WithField("key", store.KeyLeaderboard).Warn("failed to load leaderboard")
		return []model.LeaderboardEntry{}
	}
	if !ok {
		return []model.LeaderboardEntry{}
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.log.WithError(err).WithField("key", store.KeyLeaderboard).Warn("corrupted leaderboard; starting fresh")
		return []model.LeaderboardEntry{}
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries
}

// normalize repairs records written by older versions or edited by hand.
func (l *Ledger) normalize(p *model.UserProgress) {
	if p.Experience < 0 {
		p.Experience = 0
	}
	if p.TotalScore < 0 {
		p.TotalScore = 0
	}
	if p.MistakeWords == nil {
		p.MistakeWords = []model.Word{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	p.AchievementCount = len(p.Achievements)
	p.Level = l.policy.Level(*p)
	l.applyUnlocks(p)
}

func (l *Ledger) applyUnlocks(p *model.UserProgress) {
	p.UnlockedModes = gating.Union(p.UnlockedModes, l.table.UnlockedModes(p.Level))
	p.UnlockedThemes = gating.Union(p.UnlockedThemes, l.table.UnlockedThemes(p.Level))
}

func (l *Ledger) saveJSON(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("failed to encode record")
		return
	}
	if err := l.store.Set(ctx, key, payload); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("failed to save record")
	}
}

func (l *Ledger) playerName(level int) string {
	if l.name != "" {
		return l.name
	}
	return fmt.Sprintf("Player Level %d", level)
}
