package cmd

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/domain"
)

// MatrixCmd shows and edits the Eisenhower matrix
type MatrixCmd struct {
	Set  MatrixSetCmd  `cmd:"set" help:"Drop one or more tasks into a quadrant"`
	Show MatrixShowCmd `cmd:"show" help:"Show the matrix" default:"1"`
}

// MatrixShowCmd prints the matrix buckets
type MatrixShowCmd struct {
	Day string `help:"Only tasks scheduled on this day (YYYY-MM-DD, 'today' works)" default:""`
}

// Run executes the show command
func (m *MatrixShowCmd) Run(cli *CLI) error {
	var day *time.Time
	if m.Day != "" {
		parsed, err := parseDayFlag(m.Day)
		if err != nil {
			return err
		}
		day = &parsed
	}

	snapshot, err := cli.Container.MatrixService.Snapshot(context.Background(), day)
	if err != nil {
		return fmt.Errorf("failed to build matrix: %w", err)
	}

	printQuadrant("Q1 · Do first (urgent + important)", snapshot.Q1)
	printQuadrant("Q2 · Schedule (important)", snapshot.Q2)
	printQuadrant("Q3 · Delegate (urgent)", snapshot.Q3)
	printQuadrant("Q4 · Eliminate", snapshot.Q4)
	printQuadrant("Uncategorized", snapshot.Uncategorized)
	return nil
}

// MatrixSetCmd categorizes tasks into a quadrant
type MatrixSetCmd struct {
	Quadrant string   `arg:"" help:"Target quadrant" enum:"q1,q2,q3,q4"`
	IDs      []string `arg:"" help:"Task IDs"`
}

// Run executes the set command
func (m *MatrixSetCmd) Run(cli *CLI) error {
	ctx := context.Background()
	quadrant := domain.Quadrant(m.Quadrant)

	if len(m.IDs) == 1 {
		if err := cli.Container.MatrixService.Categorize(ctx, m.IDs[0], quadrant); err != nil {
			return fmt.Errorf("failed to categorize task: %w", err)
		}
	} else {
		if err := cli.Container.MatrixService.CategorizeBulk(ctx, m.IDs, quadrant); err != nil {
			return fmt.Errorf("failed to categorize tasks: %w", err)
		}
	}

	fmt.Printf("%d task(s) moved to %s\n", len(m.IDs), m.Quadrant)
	return nil
}

func printQuadrant(label string, tasks []domain.Task) {
	fmt.Printf("%s — %d\n", label, len(tasks))
	for _, task := range tasks {
		printTask(task)
	}
	fmt.Println()
}
