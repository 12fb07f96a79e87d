package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain"
)

func TestTaskAdd_Validation(t *testing.T) {
	_, tasks := newMilestoneService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		task domain.Task
	}{
		{"empty title", domain.Task{Title: "  ", Priority: domain.PriorityLow}},
		{"missing priority", domain.Task{Title: "x"}},
		{"bad priority", domain.Task{Title: "x", Priority: "urgent"}},
		{"bad urgency", domain.Task{Title: "x", Priority: domain.PriorityLow, Urgency: "asap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tasks.Add(ctx, tt.task)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTaskAdd_UnknownMilestone(t *testing.T) {
	_, tasks := newMilestoneService(t)

	_, err := tasks.Add(context.Background(), domain.Task{
		Title:       "orphan",
		Priority:    domain.PriorityLow,
		MilestoneID: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)
}

func TestTaskAdd_StartsIncomplete(t *testing.T) {
	_, tasks := newMilestoneService(t)
	ctx := context.Background()

	created, err := tasks.Add(ctx, domain.Task{Title: "sneaky", Priority: domain.PriorityHigh, Completed: true})
	require.NoError(t, err)
	assert.False(t, created.Completed)
	assert.NotEmpty(t, created.ID)
}

func TestTaskAdd_RecomputesMilestoneProgress(t *testing.T) {
	milestones, tasks := newMilestoneService(t)
	ctx := context.Background()

	m, err := milestones.Add(ctx, domain.Milestone{Title: "build"})
	require.NoError(t, err)

	one, err := tasks.Add(ctx, domain.Task{Title: "one", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, one.ID, true))

	got, err := milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 100, got.Progress)

	// Adding a second open task dilutes progress immediately
	_, err = tasks.Add(ctx, domain.Task{Title: "two", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)

	got, err = milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestTaskMove_RecomputesBothMilestones(t *testing.T) {
	milestones, tasks := newMilestoneService(t)
	ctx := context.Background()

	from, err := milestones.Add(ctx, domain.Milestone{Title: "from"})
	require.NoError(t, err)
	to, err := milestones.Add(ctx, domain.Milestone{Title: "to"})
	require.NoError(t, err)

	task, err := tasks.Add(ctx, domain.Task{Title: "shift", Priority: domain.PriorityLow, MilestoneID: from.ID})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, task.ID, true))

	require.NoError(t, tasks.MoveToMilestone(ctx, task.ID, to.ID))

	// The source loses its only task, the target gains a completed one
	got, err := milestones.Get(ctx, from.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, domain.StatusActive, got.Status)

	got, err = milestones.Get(ctx, to.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	moved, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, to.ID, moved.MilestoneID)
}

func TestTaskMove_UnknownTargetMilestone(t *testing.T) {
	_, tasks := newMilestoneService(t)
	ctx := context.Background()

	task, err := tasks.Add(ctx, domain.Task{Title: "stray", Priority: domain.PriorityLow})
	require.NoError(t, err)

	err = tasks.MoveToMilestone(ctx, task.ID, "no-such-milestone")
	assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)
}

func TestTaskUpdate_EmptyIsNoop(t *testing.T) {
	_, tasks := newMilestoneService(t)
	require.NoError(t, tasks.Update(context.Background(), "whatever", domain.TaskUpdate{}))
}

func TestTaskUpdate_Fields(t *testing.T) {
	_, tasks := newMilestoneService(t)
	ctx := context.Background()

	created, err := tasks.Add(ctx, domain.Task{Title: "draft", Priority: domain.PriorityLow})
	require.NoError(t, err)

	title := "final"
	priority := domain.PriorityHigh
	tags := []string{"deep-work"}
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tasks.Update(ctx, created.ID, domain.TaskUpdate{
		Title:    &title,
		Priority: &priority,
		Tags:     &tags,
		Date:     &date,
	}))

	got, err := tasks.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, []string{"deep-work"}, got.Tags)
	require.NotNil(t, got.Date)
}

func TestTaskDelete_RecomputesMilestone(t *testing.T) {
	milestones, tasks := newMilestoneService(t)
	ctx := context.Background()

	m, err := milestones.Add(ctx, domain.Milestone{Title: "shrinking"})
	require.NoError(t, err)

	done, err := tasks.Add(ctx, domain.Task{Title: "done", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)
	open, err := tasks.Add(ctx, domain.Task{Title: "open", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, done.ID, true))

	// Deleting the open task leaves only completed work: auto-complete
	require.NoError(t, tasks.Delete(ctx, open.ID))

	got, err := milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestTaskCountForDay(t *testing.T) {
	_, tasks := newMilestoneService(t)
	ctx := context.Background()

	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)

	a, err := tasks.Add(ctx, domain.Task{Title: "today a", Priority: domain.PriorityLow, Date: &today})
	require.NoError(t, err)
	_, err = tasks.Add(ctx, domain.Task{Title: "today b", Priority: domain.PriorityLow, Date: &today})
	require.NoError(t, err)
	_, err = tasks.Add(ctx, domain.Task{Title: "old", Priority: domain.PriorityLow, Date: &yesterday})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, a.ID, true))

	counts, err := tasks.CountForDay(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Total)
	assert.Equal(t, int64(1), counts.Completed)
}
