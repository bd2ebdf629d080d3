package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/typemaster/internal/gating"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Mode != nil || cfg.Storage.Backend != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[practice]
mode = "sentences-easy"
words = 15
name = "ada"

[progression]
policy = "linear"
streak-threshold = 85

[storage]
backend = "file"

[log]
level = "debug"

[[gating.modes]]
id = "coding"
level = 3

[[gating.themes]]
id = "space"
level = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg.Practice.Mode != "sentences-easy" || *cfg.Practice.Words != 15 || *cfg.Practice.Name != "ada" {
		t.Fatalf("unexpected practice config: %+v", cfg.Practice)
	}
	if *cfg.Progression.Policy != "linear" || *cfg.Progression.StreakThreshold != 85 {
		t.Fatalf("unexpected progression config: %+v", cfg.Progression)
	}
	if cfg.Progression.LeaderboardSize != nil {
		t.Fatalf("unset values must stay nil")
	}

	table, err := cfg.GatingTable()
	if err != nil {
		t.Fatalf("gating table: %v", err)
	}
	if !table.ModeUnlocked("coding", 3) {
		t.Fatalf("coding override not applied")
	}
	themes := strings.Join(table.UnlockedThemes(2), ",")
	if themes != "animals,food,space" {
		t.Fatalf("unexpected themes at level 2: %s", themes)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestGatingTableRejectsBadEntries(t *testing.T) {
	cfg := FileConfig{}
	if _, err := cfg.GatingTable(); err != nil {
		t.Fatalf("empty overrides: %v", err)
	}
	cfg.Gating.Themes = []gating.Unlock{{ID: "space", Level: 0}}
	if _, err := cfg.GatingTable(); err == nil {
		t.Fatalf("expected error for level 0")
	}
	cfg.Gating.Themes = []gating.Unlock{{Level: 2}}
	if _, err := cfg.GatingTable(); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestValidateNames(t *testing.T) {
	if err := ValidatePolicy("Linear"); err != nil {
		t.Fatalf("linear: %v", err)
	}
	if err := ValidatePolicy("quadratic"); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
	if err := ValidateBackend("memory"); err != nil {
		t.Fatalf("memory: %v", err)
	}
	if err := ValidateBackend("redis"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", logger.GetLevel())
	}
	logger.Info("hidden")
	logger.WithField("key", "user_progress").Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "key=user_progress") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if _, err := newLogger(&buf, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
