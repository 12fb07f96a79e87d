package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain"
)

func newMatrixService(t *testing.T) (*MatrixService, *TaskService) {
	t.Helper()
	store := newTestStore(t)
	milestones := NewMilestoneService(store.Milestones, store.Tasks)
	tasks := NewTaskService(store.Tasks, milestones)
	return NewMatrixService(store.Tasks), tasks
}

func TestMatrixSnapshot_GroupsByQuadrant(t *testing.T) {
	matrix, tasks := newMatrixService(t)
	ctx := context.Background()

	add := func(title string, p domain.Priority, u domain.Urgency) {
		t.Helper()
		_, err := tasks.Add(ctx, domain.Task{Title: title, Priority: p, Urgency: u})
		require.NoError(t, err)
	}
	add("crisis", domain.PriorityHigh, domain.UrgencyHigh)
	add("strategy", domain.PriorityHigh, domain.UrgencyLow)
	add("interruption", domain.PriorityLow, domain.UrgencyHigh)
	add("busywork", domain.PriorityMedium, domain.UrgencyMedium)
	add("unsorted", domain.PriorityLow, "")

	snap, err := matrix.Snapshot(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, snap.Q1, 1)
	assert.Len(t, snap.Q2, 1)
	assert.Len(t, snap.Q3, 1)
	assert.Len(t, snap.Q4, 1, "medium values collapse into the not-high bucket")
	assert.Len(t, snap.Uncategorized, 1)

	counts, err := matrix.Counts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.QuadrantCounts{Q1: 1, Q2: 1, Q3: 1, Q4: 1, Uncategorized: 1}, counts)
}

func TestMatrixSnapshot_DayFilter(t *testing.T) {
	matrix, tasks := newMatrixService(t)
	ctx := context.Background()

	today := time.Now()
	tomorrow := today.AddDate(0, 0, 1)

	_, err := tasks.Add(ctx, domain.Task{Title: "today", Priority: domain.PriorityHigh, Urgency: domain.UrgencyHigh, Date: &today})
	require.NoError(t, err)
	_, err = tasks.Add(ctx, domain.Task{Title: "tomorrow", Priority: domain.PriorityHigh, Urgency: domain.UrgencyHigh, Date: &tomorrow})
	require.NoError(t, err)

	snap, err := matrix.Snapshot(ctx, &today)
	require.NoError(t, err)
	require.Len(t, snap.Q1, 1)
	assert.Equal(t, "today", snap.Q1[0].Title)
}

func TestCategorize_RewritesPriorityAndUrgency(t *testing.T) {
	matrix, tasks := newMatrixService(t)
	ctx := context.Background()

	created, err := tasks.Add(ctx, domain.Task{Title: "drifting", Priority: domain.PriorityMedium})
	require.NoError(t, err)

	require.NoError(t, matrix.Categorize(ctx, created.ID, domain.Quadrant2))

	got, err := tasks.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, domain.UrgencyLow, got.Urgency)
	assert.Equal(t, domain.Quadrant2, domain.Classify(*got))
}

func TestCategorize_RejectsUncategorized(t *testing.T) {
	matrix, _ := newMatrixService(t)

	err := matrix.Categorize(context.Background(), "id", domain.QuadrantUncategorized)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategorizeBulk(t *testing.T) {
	matrix, tasks := newMatrixService(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"a", "b"} {
		created, err := tasks.Add(ctx, domain.Task{Title: title, Priority: domain.PriorityLow})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	require.NoError(t, matrix.CategorizeBulk(ctx, ids, domain.Quadrant1))

	snap, err := matrix.Snapshot(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, snap.Q1, 2)

	// Empty selection is a no-op, not an error
	require.NoError(t, matrix.CategorizeBulk(ctx, nil, domain.Quadrant1))
}

func TestMatrixWatch_DeliversReclassifiedSnapshots(t *testing.T) {
	matrix, tasks := newMatrixService(t)
	ctx := context.Background()

	created, err := tasks.Add(ctx, domain.Task{Title: "drifting", Priority: domain.PriorityLow, Urgency: domain.UrgencyLow})
	require.NoError(t, err)

	ch, cancel, err := matrix.Watch(ctx, nil)
	require.NoError(t, err)
	defer cancel()

	select {
	case snap := <-ch:
		assert.Len(t, snap.Q4, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	require.NoError(t, matrix.Categorize(ctx, created.ID, domain.Quadrant1))

	select {
	case snap := <-ch:
		assert.Empty(t, snap.Q4)
		require.Len(t, snap.Q1, 1)
		assert.Equal(t, created.ID, snap.Q1[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after move")
	}
}
