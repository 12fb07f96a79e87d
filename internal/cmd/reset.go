package cmd

import (
	"context"
	"fmt"
)

// ResetCmd wipes stored data. Every subcommand requires --force; there
// is no undo.
type ResetCmd struct {
	All        ResetAllCmd        `cmd:"all" help:"Delete everything"`
	Journal    ResetJournalCmd    `cmd:"journal" help:"Delete all satisfaction and standup logs"`
	Milestones ResetMilestonesCmd `cmd:"milestones" help:"Delete all milestones and their tasks"`
	Tasks      ResetTasksCmd      `cmd:"tasks" help:"Delete all tasks"`
}

// ResetTasksCmd deletes every task
type ResetTasksCmd struct {
	Force bool `help:"Confirm the deletion" required:""`
}

// Run executes the reset
func (r *ResetTasksCmd) Run(cli *CLI) error {
	n, err := cli.Container.TaskService.DeleteAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to reset tasks: %w", err)
	}
	fmt.Printf("Deleted %d task(s)\n", n)
	return nil
}

// ResetMilestonesCmd deletes every milestone and its tasks
type ResetMilestonesCmd struct {
	Force bool `help:"Confirm the deletion" required:""`
}

// Run executes the reset
func (r *ResetMilestonesCmd) Run(cli *CLI) error {
	milestones, tasks, err := cli.Container.MilestoneService.DeleteAll(context.Background(), true)
	if err != nil {
		return fmt.Errorf("failed to reset milestones: %w", err)
	}
	fmt.Printf("Deleted %d milestone(s) and %d linked task(s)\n", milestones, tasks)
	return nil
}

// ResetJournalCmd deletes every journal entry
type ResetJournalCmd struct {
	Force bool `help:"Confirm the deletion" required:""`
}

// Run executes the reset
func (r *ResetJournalCmd) Run(cli *CLI) error {
	satisfaction, standups, err := cli.Container.JournalService.DeleteAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to reset journal: %w", err)
	}
	fmt.Printf("Deleted %d satisfaction log(s) and %d standup(s)\n", satisfaction, standups)
	return nil
}

// ResetAllCmd deletes everything
type ResetAllCmd struct {
	Force bool `help:"Confirm the deletion" required:""`
}

// Run executes the reset
func (r *ResetAllCmd) Run(cli *CLI) error {
	ctx := context.Background()

	milestones, cascaded, err := cli.Container.MilestoneService.DeleteAll(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to reset milestones: %w", err)
	}
	tasks, err := cli.Container.TaskService.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset tasks: %w", err)
	}
	satisfaction, standups, err := cli.Container.JournalService.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset journal: %w", err)
	}

	fmt.Printf("Deleted %d milestone(s), %d task(s), %d satisfaction log(s), %d standup(s)\n",
		milestones, cascaded+tasks, satisfaction, standups)
	return nil
}
