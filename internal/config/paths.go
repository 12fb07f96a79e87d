package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetHomePath returns $PULSE_HOME or ~/.pulse
func GetHomePath() string {
	if home := os.Getenv("PULSE_HOME"); home != "" {
		return ExpandPath(home)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulse"
	}
	return filepath.Join(homeDir, ".pulse")
}

// GetSettingsPath returns the path to settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHomePath(), "settings.json")
}

// GetDBPath returns the path to the SQLite database file
func GetDBPath() string {
	return filepath.Join(GetHomePath(), "pulse.db")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
