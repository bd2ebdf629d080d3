// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typemaster/internal/gating"
)

var (
	// ErrUnknownPolicy is returned for a progression policy name that is not supported.
	ErrUnknownPolicy = errors.New("unknown progression policy")
	// ErrUnknownBackend is returned for a storage backend name that is not supported.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice    PracticeConfig    `toml:"practice"`
	Progression ProgressionConfig `toml:"progression"`
	Storage     StorageConfig     `toml:"storage"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Log         LogConfig         `toml:"log"`
	Gating      GatingConfig      `toml:"gating"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode       *string  `toml:"mode"`
	Words      *int     `toml:"words"`
	Name       *string  `toml:"name"`
	FocusWeak  *bool    `toml:"focus-weak"`
	WeakFactor *float64 `toml:"weak-factor"`
}

// ProgressionConfig maps scoring and leveling settings.
type ProgressionConfig struct {
	Policy                 *string `toml:"policy"`
	StreakThreshold        *int    `toml:"streak-threshold"`
	AccuracyBonusThreshold *int    `toml:"accuracy-bonus-threshold"`
	LeaderboardSize        *int    `toml:"leaderboard-size"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// CatalogConfig points at extra word packs.
type CatalogConfig struct {
	Packs *string `toml:"packs"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// GatingConfig overrides unlock levels per mode and theme.
type GatingConfig struct {
	Modes  []gating.Unlock `toml:"modes"`
	Themes []gating.Unlock `toml:"themes"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// GatingTable applies the configured overrides on top of the default table.
func (c FileConfig) GatingTable() (gating.Table, error) {
	for _, list := range [][]gating.Unlock{c.Gating.Modes, c.Gating.Themes} {
		for _, u := range list {
			if strings.TrimSpace(u.ID) == "" {
				return gating.Table{}, fmt.Errorf("gating entry without id")
			}
			if u.Level < 1 {
				return gating.Table{}, fmt.Errorf("gating entry %q: level must be >= 1", u.ID)
			}
		}
	}
	return gating.DefaultTable().WithOverrides(c.Gating.Modes, c.Gating.Themes), nil
}

// ValidatePolicy checks a progression policy name.
func ValidatePolicy(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "curve", "linear":
		return nil
	}
	return fmt.Errorf("%w %q (expected curve or linear)", ErrUnknownPolicy, name)
}

// ValidateBackend checks a storage backend name.
func ValidateBackend(name string) error {
	switch name {
	case "", "sqlite", "file", "memory":
		return nil
	}
	return fmt.Errorf("%w %q (expected sqlite, file or memory)", ErrUnknownBackend, name)
}
