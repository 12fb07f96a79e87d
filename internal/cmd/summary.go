package cmd

import (
	"context"
	"fmt"
	"time"
)

// SummaryCmd prints the dashboard aggregate
type SummaryCmd struct{}

// Run executes the summary command
func (s *SummaryCmd) Run(cli *CLI) error {
	summary, err := cli.Container.SummaryService.Dashboard(context.Background(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}

	fmt.Printf("Today: %d of %d tasks done\n", summary.TodayTasks.Completed, summary.TodayTasks.Total)
	fmt.Printf("Active milestones: %d\n", summary.ActiveMilestones)

	if summary.NextMilestone != nil {
		line := fmt.Sprintf("Next milestone: %s (%d%%",
			summary.NextMilestone.Title, summary.NextMilestone.Progress)
		if summary.NextDaysLeft >= 0 {
			line += fmt.Sprintf(", %d days left", summary.NextDaysLeft)
		}
		fmt.Println(line + ")")
	}

	if score := summary.Satisfaction.CurrentScore; score != nil {
		line := fmt.Sprintf("Satisfaction: %d/10", *score)
		if change := summary.Satisfaction.Change; change != nil {
			line += fmt.Sprintf(" (%+d)", *change)
		}
		fmt.Println(line)
	}

	if len(summary.RecentTasks) > 0 {
		fmt.Println("\nRecent tasks:")
		for _, task := range summary.RecentTasks {
			printTask(task)
		}
	}
	return nil
}
