package cmd

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/domain"
	"pulse/internal/services"
)

// TimerCmd tracks time
type TimerCmd struct {
	Del    TimerDelCmd    `cmd:"del" help:"Delete a time entry"`
	Edit   TimerEditCmd   `cmd:"edit" help:"Edit a closed time entry"`
	List   TimerListCmd   `cmd:"list" help:"List entries for a day"`
	Log    TimerLogCmd    `cmd:"log" help:"Log a manual entry"`
	Start  TimerStartCmd  `cmd:"start" help:"Start a timer (stops any running one)"`
	Status TimerStatusCmd `cmd:"status" help:"Show the running timer" default:"1"`
	Stop   TimerStopCmd   `cmd:"stop" help:"Stop the running timer"`
	Week   TimerWeekCmd   `cmd:"week" help:"Show this week's totals"`
}

// TimerStartCmd starts a timer
type TimerStartCmd struct {
	Milestone string   `help:"Milestone ID" default:""`
	Note      string   `help:"Note" default:""`
	Tags      []string `help:"Tags" sep:","`
	Task      string   `help:"Task ID" default:""`
	Title     string   `arg:"" help:"What you are working on"`
}

// Run executes the start command
func (t *TimerStartCmd) Run(cli *CLI) error {
	entry, err := cli.Container.TimeService.StartTimer(context.Background(), services.TimerStart{
		MilestoneID: t.Milestone,
		Note:        t.Note,
		Tags:        t.Tags,
		TaskID:      t.Task,
		Title:       t.Title,
	})
	if err != nil {
		return fmt.Errorf("failed to start timer: %w", err)
	}
	fmt.Printf("Timer started for '%s'\n", entry.TitleSnapshot)
	return nil
}

// TimerStopCmd stops the running timer
type TimerStopCmd struct{}

// Run executes the stop command
func (t *TimerStopCmd) Run(cli *CLI) error {
	stopped, err := cli.Container.TimeService.StopRunningTimer(context.Background())
	if err != nil {
		return fmt.Errorf("failed to stop timer: %w", err)
	}
	if stopped == nil {
		fmt.Println("No timer running")
		return nil
	}
	fmt.Printf("Stopped '%s' after %s\n", stopped.TitleSnapshot, formatSeconds(stopped.DurationSec))
	return nil
}

// TimerStatusCmd shows the running timer
type TimerStatusCmd struct{}

// Run executes the status command
func (t *TimerStatusCmd) Run(cli *CLI) error {
	running, err := cli.Container.TimeService.Running(context.Background())
	if err != nil {
		return fmt.Errorf("failed to check timer: %w", err)
	}
	if running == nil {
		fmt.Println("No timer running")
		return nil
	}
	elapsed := int64(time.Since(running.StartedAt).Seconds())
	fmt.Printf("'%s' running for %s\n", running.TitleSnapshot, formatSeconds(elapsed))
	return nil
}

// TimerLogCmd logs a manual entry
type TimerLogCmd struct {
	Day      string        `help:"Day the work happened (YYYY-MM-DD, 'today' works)" default:"today"`
	Duration time.Duration `help:"How long the work took (e.g. 1h30m)"`
	End      string        `help:"Explicit end time (RFC3339), requires --start" default:""`
	Note     string        `help:"Note" default:""`
	Start    string        `help:"Explicit start time (RFC3339), requires --end" default:""`
	Tags     []string      `help:"Tags" sep:","`
	Title    string        `arg:"" help:"What the entry is for"`
}

// Run executes the log command
func (t *TimerLogCmd) Run(cli *CLI) error {
	manual := services.ManualEntry{
		Duration: t.Duration,
		Note:     t.Note,
		Tags:     t.Tags,
		Title:    t.Title,
	}

	if t.Start != "" || t.End != "" {
		start, err := time.Parse(time.RFC3339, t.Start)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", t.Start, err)
		}
		end, err := time.Parse(time.RFC3339, t.End)
		if err != nil {
			return fmt.Errorf("invalid end time %q: %w", t.End, err)
		}
		manual.StartedAt = &start
		manual.EndedAt = &end
	} else {
		day, err := parseDayFlag(t.Day)
		if err != nil {
			return err
		}
		manual.Day = day
	}

	entry, err := cli.Container.TimeService.LogManual(context.Background(), manual)
	if err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}
	fmt.Printf("Logged %s for '%s' on %s\n", formatSeconds(entry.DurationSec), entry.TitleSnapshot, entry.Day)
	return nil
}

// TimerListCmd lists entries for a day
type TimerListCmd struct {
	Day string `help:"Day to list (YYYY-MM-DD, 'today' works)" default:"today"`
}

// Run executes the list command
func (t *TimerListCmd) Run(cli *CLI) error {
	day, err := parseDayFlag(t.Day)
	if err != nil {
		return err
	}

	entries, err := cli.Container.TimeService.ListDay(context.Background(), day)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No entries")
		return nil
	}

	var total int64
	for _, entry := range entries {
		duration := formatSeconds(entry.DurationSec)
		if entry.Running() {
			duration = "running"
		}
		fmt.Printf("%-10s %-40s %s\n", duration, entry.TitleSnapshot, entry.ID)
		total += entry.DurationSec
	}
	fmt.Printf("Total: %s\n", formatSeconds(total))
	return nil
}

// TimerWeekCmd shows the weekly summary
type TimerWeekCmd struct{}

// Run executes the week command
func (t *TimerWeekCmd) Run(cli *CLI) error {
	summary, err := cli.Container.TimeService.WeekSummary(context.Background(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to build week summary: %w", err)
	}

	fmt.Printf("%s across %d entries\n", formatSeconds(summary.TotalSeconds), summary.EntryCount)
	for title, seconds := range summary.TaskBreakdown {
		fmt.Printf("  %-10s %s\n", formatSeconds(seconds), title)
	}
	return nil
}

// TimerEditCmd edits a closed entry
type TimerEditCmd struct {
	End   string `help:"New end time (RFC3339)" default:""`
	ID    string `arg:"" help:"Entry ID"`
	Note  string `help:"New note" default:""`
	Start string `help:"New start time (RFC3339)" default:""`
	Title string `help:"New title" default:""`
}

// Run executes the edit command
func (t *TimerEditCmd) Run(cli *CLI) error {
	var update domain.TimeEntryUpdate
	if t.Title != "" {
		update.TitleSnapshot = &t.Title
	}
	if t.Note != "" {
		update.Note = &t.Note
	}
	if t.Start != "" {
		start, err := time.Parse(time.RFC3339, t.Start)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", t.Start, err)
		}
		update.StartedAt = &start
	}
	if t.End != "" {
		end, err := time.Parse(time.RFC3339, t.End)
		if err != nil {
			return fmt.Errorf("invalid end time %q: %w", t.End, err)
		}
		update.EndedAt = &end
	}

	if err := cli.Container.TimeService.UpdateEntry(context.Background(), t.ID, update); err != nil {
		return fmt.Errorf("failed to edit entry: %w", err)
	}
	fmt.Println("Entry updated")
	return nil
}

// TimerDelCmd deletes a time entry
type TimerDelCmd struct {
	ID string `arg:"" help:"Entry ID"`
}

// Run executes the del command
func (t *TimerDelCmd) Run(cli *CLI) error {
	if err := cli.Container.TimeService.DeleteEntry(context.Background(), t.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	fmt.Println("Entry deleted")
	return nil
}

func formatSeconds(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
