package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pulse/internal/domain"
)

// SatisfactionCmd logs and reviews daily satisfaction
type SatisfactionCmd struct {
	List  SatisfactionListCmd  `cmd:"list" help:"List recent satisfaction logs" default:"1"`
	Log   SatisfactionLogCmd   `cmd:"log" help:"Log today's satisfaction"`
	Month SatisfactionMonthCmd `cmd:"month" help:"Show one month's satisfaction calendar"`
}

// SatisfactionLogCmd records a satisfaction score
type SatisfactionLogCmd struct {
	Day   string `help:"Day to log for (YYYY-MM-DD, 'today' works)" default:"today"`
	Mood  string `help:"Mood" enum:"happy,cool,okay,angry" default:"okay"`
	Notes string `help:"Notes" default:""`
	Score int    `arg:"" help:"Score from 1 to 10"`
}

// Run executes the log command
func (s *SatisfactionLogCmd) Run(cli *CLI) error {
	day, err := parseDayFlag(s.Day)
	if err != nil {
		return err
	}

	log, err := cli.Container.JournalService.LogSatisfaction(
		context.Background(), day, s.Score, domain.Mood(s.Mood), s.Notes)
	if err != nil {
		return fmt.Errorf("failed to log satisfaction: %w", err)
	}

	fmt.Printf("Logged %d/10 (%s) for %s\n", log.Score, log.Mood, log.Date.Format(domain.DayFormat))
	return nil
}

// SatisfactionListCmd lists recent logs
type SatisfactionListCmd struct {
	Limit int `help:"Number of logs to show" default:"14"`
}

// Run executes the list command
func (s *SatisfactionListCmd) Run(cli *CLI) error {
	logs, err := cli.Container.JournalService.RecentSatisfaction(context.Background(), s.Limit)
	if err != nil {
		return fmt.Errorf("failed to list satisfaction logs: %w", err)
	}
	if len(logs) == 0 {
		fmt.Println("No satisfaction logs yet")
		return nil
	}

	for _, log := range logs {
		printSatisfaction(log)
	}
	return nil
}

// SatisfactionMonthCmd shows a month of logs
type SatisfactionMonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM, defaults to current)"`
}

// Run executes the month command
func (s *SatisfactionMonthCmd) Run(cli *CLI) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if s.Month != "" {
		parsed, err := time.Parse("2006-01", s.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", s.Month, err)
		}
		year, month = parsed.Year(), parsed.Month()
	}

	logs, err := cli.Container.JournalService.MonthSatisfaction(context.Background(), year, month)
	if err != nil {
		return fmt.Errorf("failed to list month: %w", err)
	}
	if len(logs) == 0 {
		fmt.Printf("No logs for %04d-%02d\n", year, month)
		return nil
	}

	for _, log := range logs {
		printSatisfaction(log)
	}
	return nil
}

func printSatisfaction(log domain.SatisfactionLog) {
	bar := strings.Repeat("#", log.Score)
	fmt.Printf("%s  %-10s %2d %s", log.Date.Format(domain.DayFormat), bar, log.Score, log.Mood)
	if log.Notes != "" {
		fmt.Printf("  %s", log.Notes)
	}
	fmt.Println()
}

// StandupCmd logs and reviews standups
type StandupCmd struct {
	Add  StandupAddCmd  `cmd:"add" help:"Log a standup"`
	List StandupListCmd `cmd:"list" help:"List recent standups" default:"1"`
}

// StandupAddCmd records a standup log
type StandupAddCmd struct {
	Blocked []string `help:"What is blocked" sep:";"`
	Done    []string `help:"What was completed" sep:";"`
	Next    []string `help:"What comes next" sep:";"`
	Notes   string   `help:"Free-form notes" default:""`
}

// Run executes the add command
func (s *StandupAddCmd) Run(cli *CLI) error {
	log, err := cli.Container.JournalService.AddStandup(
		context.Background(), s.Done, s.Next, s.Blocked, s.Notes)
	if err != nil {
		return fmt.Errorf("failed to log standup: %w", err)
	}

	fmt.Printf("Standup logged for %s\n", log.Date.Format(domain.DayFormat))
	return nil
}

// StandupListCmd lists recent standups
type StandupListCmd struct {
	Limit int `help:"Number of standups to show" default:"5"`
}

// Run executes the list command
func (s *StandupListCmd) Run(cli *CLI) error {
	logs, err := cli.Container.JournalService.RecentStandups(context.Background(), s.Limit)
	if err != nil {
		return fmt.Errorf("failed to list standups: %w", err)
	}
	if len(logs) == 0 {
		fmt.Println("No standups yet")
		return nil
	}

	for _, log := range logs {
		fmt.Println(log.Date.Format("Mon 2006-01-02"))
		for _, item := range log.Completed {
			fmt.Printf("  done: %s\n", item)
		}
		for _, item := range log.Planned {
			fmt.Printf("  next: %s\n", item)
		}
		for _, item := range log.Blockers {
			fmt.Printf("  blocked: %s\n", item)
		}
		if log.Notes != "" {
			fmt.Printf("  notes: %s\n", log.Notes)
		}
		fmt.Println()
	}
	return nil
}
