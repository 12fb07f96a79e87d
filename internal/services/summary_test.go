package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain"
)

func TestDashboard(t *testing.T) {
	store := newTestStore(t)
	milestones := NewMilestoneService(store.Milestones, store.Tasks)
	tasks := NewTaskService(store.Tasks, milestones)
	journal := NewJournalService(store.Journal, "u-test")
	summary := NewSummaryService(tasks, milestones, journal)
	ctx := context.Background()

	now := time.Now()
	deadline := now.AddDate(0, 0, 10)
	m, err := milestones.Add(ctx, domain.Milestone{Title: "release", EndDate: &deadline})
	require.NoError(t, err)

	done, err := tasks.Add(ctx, domain.Task{Title: "done today", Priority: domain.PriorityHigh, Date: &now, MilestoneID: m.ID})
	require.NoError(t, err)
	// The open task keeps the milestone from auto-completing
	_, err = tasks.Add(ctx, domain.Task{Title: "open today", Priority: domain.PriorityLow, Date: &now, MilestoneID: m.ID})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, done.ID, true))

	_, err = journal.LogSatisfaction(ctx, now, 7, domain.MoodCool, "")
	require.NoError(t, err)

	dash, err := summary.Dashboard(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2), dash.TodayTasks.Total)
	assert.Equal(t, int64(1), dash.TodayTasks.Completed)
	assert.Equal(t, int64(1), dash.ActiveMilestones)
	require.NotNil(t, dash.NextMilestone)
	assert.Equal(t, m.ID, dash.NextMilestone.ID)
	assert.Equal(t, 10, dash.NextDaysLeft)
	require.NotNil(t, dash.Satisfaction.CurrentScore)
	assert.Equal(t, 7, *dash.Satisfaction.CurrentScore)
	assert.Len(t, dash.RecentTasks, 2)
}

func TestDashboard_EmptyDatabase(t *testing.T) {
	store := newTestStore(t)
	milestones := NewMilestoneService(store.Milestones, store.Tasks)
	tasks := NewTaskService(store.Tasks, milestones)
	journal := NewJournalService(store.Journal, "u-test")
	summary := NewSummaryService(tasks, milestones, journal)

	dash, err := summary.Dashboard(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Zero(t, dash.TodayTasks.Total)
	assert.Nil(t, dash.NextMilestone)
	assert.Nil(t, dash.Satisfaction.CurrentScore)
	assert.Empty(t, dash.RecentTasks)
}

func TestMilestoneBoard(t *testing.T) {
	store := newTestStore(t)
	milestones := NewMilestoneService(store.Milestones, store.Tasks)
	tasks := NewTaskService(store.Tasks, milestones)
	journal := NewJournalService(store.Journal, "u-test")
	summary := NewSummaryService(tasks, milestones, journal)
	ctx := context.Background()

	now := time.Now()
	end := now.AddDate(0, 0, 3)
	m, err := milestones.Add(ctx, domain.Milestone{Title: "sprint", EndDate: &end})
	require.NoError(t, err)

	created, err := tasks.Add(ctx, domain.Task{Title: "t", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, created.ID, true))
	_, err = tasks.Add(ctx, domain.Task{Title: "u", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)

	board, err := summary.MilestoneBoard(ctx, domain.StatusActive, now)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, int64(2), board[0].TaskCounts.Total)
	assert.Equal(t, int64(1), board[0].TaskCounts.Completed)
	assert.Equal(t, 3, board[0].DaysLeft)
	assert.Equal(t, 50, board[0].Milestone.Progress)
}
