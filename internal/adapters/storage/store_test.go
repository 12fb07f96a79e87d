package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "pulse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTask(title string, milestoneID string) domain.Task {
	return domain.Task{
		CreatedAt:   time.Now().UTC(),
		ID:          uuid.New().String(),
		MilestoneID: milestoneID,
		Priority:    domain.PriorityHigh,
		Title:       title,
	}
}

func TestTaskStore_AddGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := newTask("write report", "")
	task.Tags = []string{"work", "writing"}
	require.NoError(t, store.Tasks.Add(ctx, task))

	got, err := store.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, []string{"work", "writing"}, got.Tags)
	assert.False(t, got.Completed)

	require.NoError(t, store.Tasks.Delete(ctx, task.ID))

	_, err = store.Tasks.Get(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskStore_UpdateMilestoneUnlinksToNull(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := newTask("drift", "m-1")
	require.NoError(t, store.Tasks.Add(ctx, task))

	require.NoError(t, store.Tasks.UpdateMilestone(ctx, task.ID, ""))

	// Unlinked must land as NULL, same as an unlinked create
	var model TaskModel
	require.NoError(t, store.db.Where("id = ?", task.ID).First(&model).Error)
	assert.Nil(t, model.MilestoneID)

	require.NoError(t, store.Tasks.UpdateMilestone(ctx, task.ID, "m-2"))
	got, err := store.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "m-2", got.MilestoneID)

	err = store.Tasks.UpdateMilestone(ctx, "missing", "m-2")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Tasks.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskStore_CountForMilestone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := newTask("a", "m-1")
	b := newTask("b", "m-1")
	c := newTask("c", "m-2")
	require.NoError(t, store.Tasks.Add(ctx, a))
	require.NoError(t, store.Tasks.Add(ctx, b))
	require.NoError(t, store.Tasks.Add(ctx, c))
	require.NoError(t, store.Tasks.UpdateCompletion(ctx, a.ID, true))

	counts, err := store.Tasks.CountForMilestone(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Total)
	assert.Equal(t, int64(1), counts.Completed)
}

func TestTaskStore_DeleteForMilestone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Tasks.Add(ctx, newTask("a", "m-1")))
	require.NoError(t, store.Tasks.Add(ctx, newTask("b", "m-1")))
	keep := newTask("c", "m-2")
	require.NoError(t, store.Tasks.Add(ctx, keep))

	deleted, err := store.Tasks.DeleteForMilestone(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := store.Tasks.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)
}

func TestTaskStore_UpdateQuadrant(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := newTask("decide", "")
	task.Urgency = domain.UrgencyHigh
	require.NoError(t, store.Tasks.Add(ctx, task))

	require.NoError(t, store.Tasks.UpdateQuadrant(ctx, task.ID, domain.PriorityLow, domain.UrgencyLow))

	got, err := store.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Quadrant4, domain.Classify(*got))
}

func TestTaskStore_WatchAllDeliversUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ch, cancel, err := store.Tasks.WatchAll(ctx)
	require.NoError(t, err)
	defer cancel()

	// Initial snapshot is empty
	select {
	case snapshot := <-ch:
		assert.Empty(t, snapshot)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	require.NoError(t, store.Tasks.Add(ctx, newTask("watched", "")))

	select {
	case snapshot := <-ch:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "watched", snapshot[0].Title)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after write")
	}
}

func TestMilestoneStore_AddUpdateProgress(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	m := domain.Milestone{
		ID:        uuid.New().String(),
		StartDate: &now,
		Status:    domain.StatusActive,
		Title:     "v1 launch",
		Urgency:   domain.UrgencyHigh,
	}
	require.NoError(t, store.Milestones.Add(ctx, m))

	require.NoError(t, store.Milestones.SetProgress(ctx, m.ID, 100, domain.StatusCompleted))

	got, err := store.Milestones.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestMilestoneStore_ListUpcomingOrdersByEndDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	later := now.AddDate(0, 0, 14)
	sooner := now.AddDate(0, 0, 3)

	first := domain.Milestone{ID: uuid.New().String(), Status: domain.StatusActive, Title: "later", EndDate: &later}
	second := domain.Milestone{ID: uuid.New().String(), Status: domain.StatusActive, Title: "sooner", EndDate: &sooner}
	require.NoError(t, store.Milestones.Add(ctx, first))
	require.NoError(t, store.Milestones.Add(ctx, second))

	upcoming, err := store.Milestones.ListUpcoming(ctx, now, 2)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "sooner", upcoming[0].Title)
	assert.Equal(t, "later", upcoming[1].Title)
}

func TestTimeEntryStore_RunningLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	running, err := store.TimeSheet.Running(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, running)

	started := time.Now().UTC().Add(-90 * time.Second)
	entry := domain.TimeEntry{
		Day:           domain.DayString(started),
		ID:            uuid.New().String(),
		Source:        domain.SourceTimer,
		StartedAt:     started,
		TitleSnapshot: "deep work",
		UserID:        "u-1",
	}
	require.NoError(t, store.TimeSheet.Add(ctx, entry))

	running, err = store.TimeSheet.Running(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.True(t, running.Running())

	ended := time.Now().UTC()
	require.NoError(t, store.TimeSheet.Stop(ctx, entry.ID, ended, 90))

	running, err = store.TimeSheet.Running(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, running)

	got, err := store.TimeSheet.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(90), got.DurationSec)
	require.NotNil(t, got.EndedAt)
}

func TestJournalStore_SatisfactionUpsertByDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	log := domain.SatisfactionLog{
		Date:   day,
		ID:     uuid.New().String(),
		Mood:   domain.MoodHappy,
		Score:  8,
		UserID: "u-1",
	}
	require.NoError(t, store.Journal.AddSatisfaction(ctx, log))

	found, err := store.Journal.FindSatisfactionForDay(ctx, "u-1", day.Add(5*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, log.ID, found.ID)

	found.Score = 4
	found.Mood = domain.MoodAngry
	require.NoError(t, store.Journal.SaveSatisfaction(ctx, *found))

	recent, err := store.Journal.ListRecentSatisfaction(ctx, "u-1", 7)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 4, recent[0].Score)
}

func TestJournalStore_Standups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	log := domain.StandupLog{
		Blockers:  []string{"waiting on review"},
		Completed: []string{"shipped parser"},
		Date:      time.Now().UTC(),
		ID:        uuid.New().String(),
		Planned:   []string{"start migration"},
		UserID:    "u-1",
	}
	require.NoError(t, store.Journal.AddStandup(ctx, log))

	recent, err := store.Journal.ListRecentStandups(ctx, "u-1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, []string{"shipped parser"}, recent[0].Completed)
	assert.Equal(t, []string{"waiting on review"}, recent[0].Blockers)
}
