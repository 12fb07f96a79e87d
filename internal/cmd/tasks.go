package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pulse/internal/domain"
)

// TasksCmd manages tasks
type TasksCmd struct {
	Add    TasksAddCmd    `cmd:"add" help:"Add a new task"`
	Del    TasksDelCmd    `cmd:"del" help:"Delete a task"`
	Done   TasksDoneCmd   `cmd:"done" help:"Mark a task as completed"`
	Edit   TasksEditCmd   `cmd:"edit" help:"Edit task fields"`
	List   TasksListCmd   `cmd:"list" help:"List tasks" default:"1"`
	Move   TasksMoveCmd   `cmd:"move" help:"Relink a task to another milestone"`
	Reopen TasksReopenCmd `cmd:"reopen" help:"Mark a completed task as open again"`
}

// TasksAddCmd adds a new task
type TasksAddCmd struct {
	Date      string   `help:"Scheduled day (YYYY-MM-DD)" default:""`
	Milestone string   `help:"Milestone ID to link the task to" default:""`
	Priority  string   `help:"Priority" enum:"low,medium,high" default:"medium"`
	Tags      []string `help:"Tags" sep:","`
	Title     string   `arg:"" help:"Task title"`
	Urgency   string   `help:"Urgency" enum:",low,medium,high" default:""`
}

// Run executes the add command
func (t *TasksAddCmd) Run(cli *CLI) error {
	task := domain.Task{
		MilestoneID: t.Milestone,
		Priority:    domain.Priority(t.Priority),
		Tags:        t.Tags,
		Title:       t.Title,
		Urgency:     domain.Urgency(t.Urgency),
	}
	if t.Date != "" {
		day, err := domain.ParseDay(t.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", t.Date, err)
		}
		task.Date = &day
	}

	created, err := cli.Container.TaskService.Add(context.Background(), task)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Task '%s' added (%s)\n", created.Title, created.ID)
	return nil
}

// TasksListCmd lists tasks
type TasksListCmd struct {
	All       bool   `help:"List every task instead of the recent feed"`
	Day       string `help:"Only tasks scheduled on this day (YYYY-MM-DD, 'today' works)" default:""`
	Milestone string `help:"Only tasks linked to this milestone ID" default:""`
}

// Run executes the list command
func (t *TasksListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	svc := cli.Container.TaskService

	var (
		tasks []domain.Task
		err   error
	)
	switch {
	case t.Milestone != "":
		tasks, err = svc.ListForMilestone(ctx, t.Milestone)
	case t.Day != "":
		day, perr := parseDayFlag(t.Day)
		if perr != nil {
			return perr
		}
		tasks, err = svc.ListForDay(ctx, day)
	case t.All:
		tasks, err = svc.ListAll(ctx)
	default:
		tasks, err = svc.RecentFeed(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	for _, task := range tasks {
		printTask(task)
	}
	return nil
}

// TasksDoneCmd marks a task as completed
type TasksDoneCmd struct {
	ID string `arg:"" help:"Task ID"`
}

// Run executes the done command
func (t *TasksDoneCmd) Run(cli *CLI) error {
	if err := cli.Container.TaskService.SetCompletion(context.Background(), t.ID, true); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	fmt.Println("Task completed")
	return nil
}

// TasksReopenCmd reopens a completed task
type TasksReopenCmd struct {
	ID string `arg:"" help:"Task ID"`
}

// Run executes the reopen command
func (t *TasksReopenCmd) Run(cli *CLI) error {
	if err := cli.Container.TaskService.SetCompletion(context.Background(), t.ID, false); err != nil {
		return fmt.Errorf("failed to reopen task: %w", err)
	}
	fmt.Println("Task reopened")
	return nil
}

// TasksEditCmd edits task fields
type TasksEditCmd struct {
	Date     string   `help:"New scheduled day (YYYY-MM-DD)" default:""`
	ID       string   `arg:"" help:"Task ID"`
	Priority string   `help:"New priority" enum:",low,medium,high" default:""`
	Tags     []string `help:"Replacement tag list" sep:","`
	Title    string   `help:"New title" default:""`
	Urgency  string   `help:"New urgency" enum:",low,medium,high" default:""`
}

// Run executes the edit command
func (t *TasksEditCmd) Run(cli *CLI) error {
	var update domain.TaskUpdate
	if t.Title != "" {
		update.Title = &t.Title
	}
	if t.Priority != "" {
		p := domain.Priority(t.Priority)
		update.Priority = &p
	}
	if t.Urgency != "" {
		u := domain.Urgency(t.Urgency)
		update.Urgency = &u
	}
	if t.Tags != nil {
		update.Tags = &t.Tags
	}
	if t.Date != "" {
		day, err := domain.ParseDay(t.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", t.Date, err)
		}
		update.Date = &day
	}
	if update.Empty() {
		fmt.Println("Nothing to change")
		return nil
	}

	if err := cli.Container.TaskService.Update(context.Background(), t.ID, update); err != nil {
		return fmt.Errorf("failed to edit task: %w", err)
	}
	fmt.Println("Task updated")
	return nil
}

// TasksMoveCmd relinks a task to another milestone
type TasksMoveCmd struct {
	ID        string `arg:"" help:"Task ID"`
	Milestone string `help:"Target milestone ID, empty to unlink" default:""`
}

func (t *TasksMoveCmd) Run(cli *CLI) error {
	if err := cli.Container.TaskService.MoveToMilestone(context.Background(), t.ID, t.Milestone); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	if t.Milestone == "" {
		fmt.Println("Task unlinked from its milestone")
	} else {
		fmt.Println("Task moved")
	}
	return nil
}

// TasksDelCmd deletes a task
type TasksDelCmd struct {
	ID string `arg:"" help:"Task ID"`
}

// Run executes the del command
func (t *TasksDelCmd) Run(cli *CLI) error {
	if err := cli.Container.TaskService.Delete(context.Background(), t.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	fmt.Println("Task deleted")
	return nil
}

func printTask(task domain.Task) {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %-40s %-8s %s", check, task.Title, task.Priority, task.ID)
	if len(task.Tags) > 0 {
		line += "  #" + strings.Join(task.Tags, " #")
	}
	fmt.Println(line)
}

// parseDayFlag accepts YYYY-MM-DD or the literal "today"
func parseDayFlag(raw string) (time.Time, error) {
	if strings.EqualFold(raw, "today") {
		return time.Now(), nil
	}
	day, err := domain.ParseDay(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", raw, err)
	}
	return day, nil
}
