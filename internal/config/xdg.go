// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "typemaster"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultPacksPath returns where user word packs are looked up.
func DefaultPacksPath() string {
	return filepath.Join(XDGConfigHome(), appName, "packs.yaml")
}

// DefaultStorePath returns the default location for a storage backend.
func DefaultStorePath(backend string) string {
	switch backend {
	case "file":
		return filepath.Join(XDGDataHome(), appName, "kv")
	default:
		return filepath.Join(XDGDataHome(), appName, appName+".db")
	}
}
