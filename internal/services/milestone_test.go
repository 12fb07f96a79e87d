package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/adapters/storage"
	"pulse/internal/domain"
	"pulse/internal/ports"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "pulse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newMilestoneService(t *testing.T) (*MilestoneService, *TaskService) {
	t.Helper()
	store := newTestStore(t)
	milestones := NewMilestoneService(store.Milestones, store.Tasks)
	tasks := NewTaskService(store.Tasks, milestones)
	return milestones, tasks
}

func TestMilestoneAdd_Defaults(t *testing.T) {
	milestones, _ := newMilestoneService(t)
	ctx := context.Background()

	created, err := milestones.Add(ctx, domain.Milestone{Title: "ship v1"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, 0, created.Progress)
	require.NotNil(t, created.StartDate)
}

func TestMilestoneAdd_Validation(t *testing.T) {
	milestones, _ := newMilestoneService(t)
	ctx := context.Background()

	_, err := milestones.Add(ctx, domain.Milestone{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = milestones.Add(ctx, domain.Milestone{Title: "x", Urgency: "extreme"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = milestones.Add(ctx, domain.Milestone{Title: "x", Status: "done"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecompute_ProgressAndAutoComplete(t *testing.T) {
	milestones, tasks := newMilestoneService(t)
	ctx := context.Background()

	m, err := milestones.Add(ctx, domain.Milestone{Title: "launch"})
	require.NoError(t, err)

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task, err := tasks.Add(ctx, domain.Task{Title: title, Priority: domain.PriorityMedium, MilestoneID: m.ID})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	// One of three done: 33%
	require.NoError(t, tasks.SetCompletion(ctx, ids[0], true))
	got, err := milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, got.Progress)
	assert.Equal(t, domain.StatusActive, got.Status)

	// All done: auto-complete
	require.NoError(t, tasks.SetCompletion(ctx, ids[1], true))
	require.NoError(t, tasks.SetCompletion(ctx, ids[2], true))
	got, err = milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	// Reopening a task reverts completed to active
	require.NoError(t, tasks.SetCompletion(ctx, ids[2], false))
	got, err = milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, got.Progress)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestRecompute_LeavesPlannedAndOnHoldAlone(t *testing.T) {
	milestones, tasks := newMilestoneService(t)
	ctx := context.Background()

	m, err := milestones.Add(ctx, domain.Milestone{Title: "someday", Status: domain.StatusOnHold})
	require.NoError(t, err)

	task, err := tasks.Add(ctx, domain.Task{Title: "only one", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, task.ID, true))

	got, err := milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, domain.StatusOnHold, got.Status, "progress updates but on-hold status is never auto-transitioned")
}

func TestRecompute_EmptyMilestoneNeverCompletes(t *testing.T) {
	milestones, _ := newMilestoneService(t)
	ctx := context.Background()

	m, err := milestones.Add(ctx, domain.Milestone{Title: "empty"})
	require.NoError(t, err)

	require.NoError(t, milestones.Recompute(ctx, m.ID))

	got, err := milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, domain.StatusActive, got.Status)
}

// countingMilestoneRepo counts progress writes reaching the store.
type countingMilestoneRepo struct {
	ports.MilestoneRepository
	setProgressCalls int
}

func (c *countingMilestoneRepo) SetProgress(ctx context.Context, id string, progress int, status domain.MilestoneStatus) error {
	c.setProgressCalls++
	return c.MilestoneRepository.SetProgress(ctx, id, progress, status)
}

func TestRecompute_SkipsWriteWhenUnchanged(t *testing.T) {
	store := newTestStore(t)
	counting := &countingMilestoneRepo{MilestoneRepository: store.Milestones}
	milestones := NewMilestoneService(counting, store.Tasks)
	tasks := NewTaskService(store.Tasks, milestones)
	ctx := context.Background()

	m, err := milestones.Add(ctx, domain.Milestone{Title: "steady"})
	require.NoError(t, err)
	task, err := tasks.Add(ctx, domain.Task{Title: "only", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompletion(ctx, task.ID, true))
	require.Equal(t, 1, counting.setProgressCalls)

	// Nothing changed, so repeated recomputes never reach the store
	require.NoError(t, milestones.Recompute(ctx, m.ID))
	require.NoError(t, milestones.Recompute(ctx, m.ID))
	assert.Equal(t, 1, counting.setProgressCalls)
}

// failingMilestoneRepo breaks Get so recompute cannot load state.
type failingMilestoneRepo struct {
	ports.MilestoneRepository
}

func (f failingMilestoneRepo) Get(ctx context.Context, id string) (*domain.Milestone, error) {
	return nil, errors.New("storage unavailable")
}

func TestRecomputeBestEffort_SwallowsFailure(t *testing.T) {
	store := newTestStore(t)
	milestones := NewMilestoneService(failingMilestoneRepo{store.Milestones}, store.Tasks)

	// Must not panic or propagate
	milestones.RecomputeBestEffort(context.Background(), "m-1")
}

func TestMilestoneDelete_Cascade(t *testing.T) {
	milestones, tasks := newMilestoneService(t)
	ctx := context.Background()

	m, err := milestones.Add(ctx, domain.Milestone{Title: "doomed"})
	require.NoError(t, err)
	_, err = tasks.Add(ctx, domain.Task{Title: "t1", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)
	_, err = tasks.Add(ctx, domain.Task{Title: "t2", Priority: domain.PriorityLow, MilestoneID: m.ID})
	require.NoError(t, err)

	deleted, err := milestones.Delete(ctx, m.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = milestones.Get(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)

	remaining, err := tasks.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestMilestoneNextActive(t *testing.T) {
	milestones, _ := newMilestoneService(t)
	ctx := context.Background()

	now := time.Now()
	far := now.AddDate(0, 1, 0)
	near := now.AddDate(0, 0, 5)

	_, err := milestones.Add(ctx, domain.Milestone{Title: "far", EndDate: &far})
	require.NoError(t, err)
	_, err = milestones.Add(ctx, domain.Milestone{Title: "near", EndDate: &near})
	require.NoError(t, err)
	_, err = milestones.Add(ctx, domain.Milestone{Title: "paused", Status: domain.StatusOnHold, EndDate: &now})
	require.NoError(t, err)

	next, err := milestones.NextActive(ctx, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "near", next.Title)
}
