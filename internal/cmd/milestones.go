package cmd

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/domain"
)

// MilestonesCmd manages milestones
type MilestonesCmd struct {
	Add  MilestonesAddCmd  `cmd:"add" help:"Add a new milestone"`
	Del  MilestonesDelCmd  `cmd:"del" help:"Delete a milestone"`
	Edit MilestonesEditCmd `cmd:"edit" help:"Edit milestone fields"`
	List MilestonesListCmd `cmd:"list" help:"List milestones" default:"1"`
	View MilestonesViewCmd `cmd:"view" help:"View a milestone with its tasks"`
}

// MilestonesAddCmd adds a new milestone
type MilestonesAddCmd struct {
	Description string `help:"Description" default:""`
	End         string `help:"Target end date (YYYY-MM-DD)" default:""`
	Status      string `help:"Initial status" enum:"planned,active,completed,on_hold" default:"active"`
	Title       string `arg:"" help:"Milestone title"`
	Urgency     string `help:"Urgency" enum:",low,medium,high" default:""`
}

// Run executes the add command
func (m *MilestonesAddCmd) Run(cli *CLI) error {
	milestone := domain.Milestone{
		Description: m.Description,
		Status:      domain.MilestoneStatus(m.Status),
		Title:       m.Title,
		Urgency:     domain.Urgency(m.Urgency),
	}
	if m.End != "" {
		end, err := domain.ParseDay(m.End)
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", m.End, err)
		}
		milestone.EndDate = &end
	}

	created, err := cli.Container.MilestoneService.Add(context.Background(), milestone)
	if err != nil {
		return fmt.Errorf("failed to add milestone: %w", err)
	}

	fmt.Printf("Milestone '%s' added (%s)\n", created.Title, created.ID)
	return nil
}

// MilestonesListCmd lists milestones with progress and countdown
type MilestonesListCmd struct {
	Status string `help:"Status to list" enum:"planned,active,completed,on_hold" default:"active"`
}

// Run executes the list command
func (m *MilestonesListCmd) Run(cli *CLI) error {
	now := time.Now()
	board, err := cli.Container.SummaryService.MilestoneBoard(
		context.Background(), domain.MilestoneStatus(m.Status), now)
	if err != nil {
		return fmt.Errorf("failed to list milestones: %w", err)
	}

	if len(board) == 0 {
		fmt.Printf("No %s milestones\n", m.Status)
		return nil
	}

	for _, row := range board {
		countdown := "no deadline"
		if row.DaysLeft >= 0 {
			countdown = fmt.Sprintf("%d days left", row.DaysLeft)
		}
		fmt.Printf("%-30s %3d%%  %d/%d tasks  %-14s %s\n",
			row.Milestone.Title,
			row.Milestone.Progress,
			row.TaskCounts.Completed, row.TaskCounts.Total,
			countdown,
			row.Milestone.ID)
	}
	return nil
}

// MilestonesViewCmd shows one milestone and its linked tasks
type MilestonesViewCmd struct {
	ID string `arg:"" help:"Milestone ID"`
}

// Run executes the view command
func (m *MilestonesViewCmd) Run(cli *CLI) error {
	ctx := context.Background()

	milestone, err := cli.Container.MilestoneService.Get(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("failed to load milestone: %w", err)
	}

	fmt.Printf("%s (%s)\n", milestone.Title, milestone.Status)
	if milestone.Description != "" {
		fmt.Println(milestone.Description)
	}
	fmt.Printf("Progress: %d%%\n", milestone.Progress)
	if days := domain.DaysLeft(milestone.EndDate, time.Now()); days >= 0 {
		fmt.Printf("Days left: %d\n", days)
	}

	tasks, err := cli.Container.TaskService.ListForMilestone(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("failed to list milestone tasks: %w", err)
	}
	if len(tasks) > 0 {
		fmt.Println()
		for _, task := range tasks {
			printTask(task)
		}
	}
	return nil
}

// MilestonesEditCmd edits milestone fields
type MilestonesEditCmd struct {
	Description string `help:"New description" default:""`
	End         string `help:"New target end date (YYYY-MM-DD)" default:""`
	ID          string `arg:"" help:"Milestone ID"`
	Status      string `help:"New status" enum:",planned,active,completed,on_hold" default:""`
	Title       string `help:"New title" default:""`
	Urgency     string `help:"New urgency" enum:",low,medium,high" default:""`
}

// Run executes the edit command
func (m *MilestonesEditCmd) Run(cli *CLI) error {
	var update domain.MilestoneUpdate
	if m.Title != "" {
		update.Title = &m.Title
	}
	if m.Description != "" {
		update.Description = &m.Description
	}
	if m.Status != "" {
		s := domain.MilestoneStatus(m.Status)
		update.Status = &s
	}
	if m.Urgency != "" {
		u := domain.Urgency(m.Urgency)
		update.Urgency = &u
	}
	if m.End != "" {
		end, err := domain.ParseDay(m.End)
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", m.End, err)
		}
		update.EndDate = &end
	}
	if update.Empty() {
		fmt.Println("Nothing to change")
		return nil
	}

	if err := cli.Container.MilestoneService.Update(context.Background(), m.ID, update); err != nil {
		return fmt.Errorf("failed to edit milestone: %w", err)
	}
	fmt.Println("Milestone updated")
	return nil
}

// MilestonesDelCmd deletes a milestone
type MilestonesDelCmd struct {
	ID        string `arg:"" help:"Milestone ID"`
	KeepTasks bool   `help:"Keep linked tasks instead of deleting them"`
}

// Run executes the del command
func (m *MilestonesDelCmd) Run(cli *CLI) error {
	deleted, err := cli.Container.MilestoneService.Delete(context.Background(), m.ID, !m.KeepTasks)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	if deleted > 0 {
		fmt.Printf("Milestone deleted along with %d task(s)\n", deleted)
	} else {
		fmt.Println("Milestone deleted")
	}
	return nil
}
