// Package gating decides which content a player level may select.
package gating

import (
	"sort"

	"github.com/verte-zerg/typemaster/internal/model"
)

// Unlock binds a content id to the level that unlocks it.
type Unlock struct {
	ID    string `toml:"id"`
	Level int    `toml:"level"`
}

// Table is the level configuration for modes and themes.
type Table struct {
	Modes  []Unlock
	Themes []Unlock
}

// DefaultTable returns the stock unlock thresholds.
func DefaultTable() Table {
	return Table{
		Modes: []Unlock{
			{ID: "words-easy", Level: 1},
			{ID: "sentences-easy", Level: 2},
			{ID: "words-medium", Level: 3},
			{ID: "sentences-medium", Level: 4},
			{ID: "words-hard", Level: 5},
			{ID: "sentences-hard", Level: 6},
			{ID: "coding", Level: 6},
		},
		Themes: []Unlock{
			{ID: "animals", Level: 1},
			{ID: "food", Level: 1},
			{ID: "nature", Level: 3},
			{ID: "technology", Level: 5},
			{ID: "business", Level: 7},
			{ID: "advanced", Level: 10},
		},
	}
}

// WithOverrides returns a copy of t where matching ids take the override
// level and unknown ids are appended.
func (t Table) WithOverrides(modes, themes []Unlock) Table {
	return Table{
		Modes:  merge(t.Modes, modes),
		Themes: merge(t.Themes, themes),
	}
}

// IsUnlocked reports whether content gated at requiredLevel is selectable at level.
// A requiredLevel below 1 means always unlocked.
func IsUnlocked(requiredLevel, level int) bool {
	if requiredLevel < 1 {
		requiredLevel = 1
	}
	return requiredLevel <= level
}

// UnlockedModes lists mode ids available at level in table order.
func (t Table) UnlockedModes(level int) []string {
	return unlockedIDs(t.Modes, level)
}

// UnlockedThemes lists theme ids available at level in table order.
func (t Table) UnlockedThemes(level int) []string {
	return unlockedIDs(t.Themes, level)
}

// ModeLevel returns the level required for mode and whether it is known.
func (t Table) ModeLevel(mode string) (int, bool) {
	for _, u := range t.Modes {
		if u.ID == mode {
			return u.Level, true
		}
	}
	return 0, false
}

// ModeUnlocked reports whether mode is known and selectable at level.
func (t Table) ModeUnlocked(mode string, level int) bool {
	required, ok := t.ModeLevel(mode)
	return ok && IsUnlocked(required, level)
}

// Available filters packs to those selectable at level.
func Available(packs []model.WordPack, level int) []model.WordPack {
	out := make([]model.WordPack, 0, len(packs))
	for _, p := range packs {
		if IsUnlocked(p.RequiredLevel, level) {
			out = append(out, p)
		}
	}
	return out
}

// Union merges next into prev keeping prev order and never dropping ids.
func Union(prev, next []string) []string {
	seen := make(map[string]struct{}, len(prev)+len(next))
	out := make([]string, 0, len(prev)+len(next))
	for _, list := range [][]string{prev, next} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func unlockedIDs(unlocks []Unlock, level int) []string {
	ordered := make([]Unlock, len(unlocks))
	copy(ordered, unlocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Level < ordered[j].Level
	})
	out := []string{}
	for _, u := range ordered {
		if IsUnlocked(u.Level, level) {
			out = append(out, u.ID)
		}
	}
	return out
}

func merge(base, overrides []Unlock) []Unlock {
	out := make([]Unlock, len(base))
	copy(out, base)
	for _, o := range overrides {
		if o.ID == "" {
			continue
		}
		replaced := false
		for i := range out {
			if out[i].ID == o.ID {
				out[i].Level = o.Level
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}
