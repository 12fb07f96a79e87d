package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"pulse/internal/config"
	"pulse/internal/logging"
	"pulse/internal/ui"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run          RunCmd          `cmd:"" help:"Start the pulse dashboard TUI (default)" default:"1"`
	Tasks        TasksCmd        `cmd:"tasks" help:"Manage tasks (add, list, done, edit, del)"`
	Milestones   MilestonesCmd   `cmd:"milestones" help:"Manage milestones and their progress"`
	Timer        TimerCmd        `cmd:"timer" help:"Track time (start, stop, log, week)"`
	Matrix       MatrixCmd       `cmd:"matrix" help:"Eisenhower matrix views and categorization"`
	Satisfaction SatisfactionCmd `cmd:"satisfaction" help:"Log and review daily satisfaction"`
	Standup      StandupCmd      `cmd:"standup" help:"Log and review daily standups"`
	Summary      SummaryCmd      `cmd:"summary" help:"Show the dashboard summary"`
	Reset        ResetCmd        `cmd:"reset" help:"Danger zone: wipe stored data"`
	Server       ServerCmd       `cmd:"server" help:"Serve the dashboard over SSH"`
	Settings     SettingsCmd     `cmd:"settings" help:"Manage settings"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings.
// Precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) AfterApply() error {
	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("PULSE_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("PULSE_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Propagate debug settings so subprocesses share the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("PULSE_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("PULSE_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("PULSE_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so the storage
	// layer's logger never sees a nil logging.Logger
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// RunCmd starts the dashboard TUI
type RunCmd struct{}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting pulse dashboard")

	model := ui.NewModel(cli.Container.UIServices())
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
