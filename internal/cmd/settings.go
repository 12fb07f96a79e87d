package cmd

import (
	"fmt"
	"strconv"

	"pulse/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Path SettingsPathCmd `cmd:"path" help:"Print the settings file path"`
	Set  SettingsSetCmd  `cmd:"set" help:"Set a settings key"`
	View SettingsViewCmd `cmd:"view" help:"Show current settings" default:"1"`
}

// SettingsPathCmd prints the settings file path
type SettingsPathCmd struct{}

// Run executes the path command
func (s *SettingsPathCmd) Run(cli *CLI) error {
	fmt.Println(config.GetSettingsPath())
	return nil
}

// SettingsViewCmd shows the effective settings
type SettingsViewCmd struct{}

// Run executes the view command
func (s *SettingsViewCmd) Run(cli *CLI) error {
	settings := cli.settings
	if settings == nil {
		settings = &config.Settings{}
	}

	fmt.Printf("user-id:       %s\n", settings.ResolvedUserID())
	fmt.Printf("server-host:   %s\n", orDefault(settings.ServerHost, "localhost"))
	fmt.Printf("server-port:   %s\n", orDefault(settings.ServerPort, config.DefaultServerPort))
	debug := false
	if settings.Debug != nil {
		debug = *settings.Debug
	}
	fmt.Printf("debug:         %t\n", debug)
	if settings.MaxLogFiles != nil {
		fmt.Printf("max-log-files: %d\n", *settings.MaxLogFiles)
	}
	return nil
}

// SettingsSetCmd sets one settings key
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Key to set" enum:"user-id,server-host,server-port,debug,max-log-files"`
	Value string `arg:"" help:"New value"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	switch s.Key {
	case "user-id":
		settings.UserID = s.Value
	case "server-host":
		settings.ServerHost = s.Value
	case "server-port":
		settings.ServerPort = s.Value
	case "debug":
		debug, err := strconv.ParseBool(s.Value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", s.Value, err)
		}
		settings.Debug = &debug
	case "max-log-files":
		n, err := strconv.Atoi(s.Value)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s.Value, err)
		}
		settings.MaxLogFiles = &n
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Printf("%s set to %s\n", s.Key, s.Value)
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
