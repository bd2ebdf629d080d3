// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty partitions catalog content.
type Difficulty string

// Difficulty tiers, ordered from easiest to hardest.
const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists all tiers in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty converts a tier name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy, nil
	case Medium:
		return Medium, nil
	case Hard:
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Word is a vocabulary entry of the content catalog.
type Word struct {
	Text       string     `json:"word" yaml:"word" validate:"required"`
	Meaning    string     `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=easy medium hard"`
	Theme      string     `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Sentence is a sentence entry of the content catalog.
type Sentence struct {
	Text       string     `json:"sentence" yaml:"sentence" validate:"required"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=easy medium hard"`
	Theme      string     `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// WordPack groups themed entries behind a level gate.
type WordPack struct {
	ID            string     `yaml:"id" validate:"required"`
	Name          string     `yaml:"name"`
	Theme         string     `yaml:"theme"`
	Description   string     `yaml:"description,omitempty"`
	Difficulty    Difficulty `yaml:"difficulty" validate:"required,oneof=easy medium hard"`
	RequiredLevel int        `yaml:"required-level" validate:"gte=0"`
	Words         []Word     `yaml:"words" validate:"dive"`
	Sentences     []Sentence `yaml:"sentences,omitempty" validate:"dive"`
}

// SessionResult is the final tuple a completed typing session produces.
type SessionResult struct {
	SessionID      string  `json:"session_id"`
	WPM            int     `json:"wpm" validate:"gte=0"`
	Accuracy       int     `json:"accuracy" validate:"gte=0,lte=100"`
	CorrectWords   int     `json:"correct_words" validate:"gte=0"`
	ElapsedSeconds float64 `json:"elapsed_seconds" validate:"gte=0"`
	Mistakes       []rune  `json:"-"`
}

// UserProgress is the persisted progression record for the local player.
type UserProgress struct {
	Level            int      `json:"level"`
	Experience       int      `json:"currentExp"`
	TotalScore       int      `json:"totalScore"`
	BestWPM          int      `json:"bestWpm"`
	BestAccuracy     int      `json:"bestAccuracy"`
	MistakeWords     []Word   `json:"mistakeWords"`
	AchievementCount int      `json:"achievementCount"`
	Achievements     []string `json:"achievements"`
	Streak           int      `json:"streak"`
	SessionsPlayed   int      `json:"sessionsPlayed"`
	UnlockedModes    []string `json:"unlockedModes"`
	UnlockedThemes   []string `json:"unlockedThemes"`
}

// LeaderboardEntry records one finished session on the leaderboard.
type LeaderboardEntry struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name"`
	WPM      int       `json:"wpm"`
	Accuracy int       `json:"accuracy"`
	Score    int       `json:"score"`
	Date     time.Time `json:"date"`
}
