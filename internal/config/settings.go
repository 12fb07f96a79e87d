package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultUserID is used when no user id is configured. The store is
// single-user; the id exists so entries stay addressable if real
// accounts ever appear.
const DefaultUserID = "local-user"

// DefaultServerPort is the default SSH dashboard port
const DefaultServerPort = "2234"

// Settings represents the structure of $PULSE_HOME/settings.json
type Settings struct {
	Debug       *bool  `json:"debug,omitempty"`
	MaxLogFiles *int   `json:"max_log_files,omitempty"`
	ServerHost  string `json:"server_host,omitempty"`
	ServerPort  string `json:"server_port,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// ResolvedUserID returns the configured user id or the default.
func (s *Settings) ResolvedUserID() string {
	if s == nil || s.UserID == "" {
		return DefaultUserID
	}
	return s.UserID
}

// LoadSettings loads settings from $PULSE_HOME/settings.json (or
// ~/.pulse/settings.json if not set). Returns empty Settings if the
// file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $PULSE_HOME/settings.json
func SaveSettings(settings *Settings) error {
	if err := os.MkdirAll(GetHomePath(), 0755); err != nil {
		return fmt.Errorf("failed to create pulse home: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(GetSettingsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
