package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain"
)

func newTimeService(t *testing.T) *TimeService {
	t.Helper()
	return NewTimeService(newTestStore(t).TimeSheet, "u-test")
}

func TestStartTimer_RequiresTitle(t *testing.T) {
	svc := newTimeService(t)

	_, err := svc.StartTimer(context.Background(), TimerStart{Title: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStartTimer_StopsPreviousTimer(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	first, err := svc.StartTimer(ctx, TimerStart{Title: "first"})
	require.NoError(t, err)

	second, err := svc.StartTimer(ctx, TimerStart{Title: "second"})
	require.NoError(t, err)

	running, err := svc.Running(ctx)
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.Equal(t, second.ID, running.ID)

	week, err := svc.ListWeek(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, week, 2)
	for _, e := range week {
		if e.ID == first.ID {
			assert.NotNil(t, e.EndedAt, "previous timer must be closed")
		}
	}
}

func TestStopRunningTimer_NoopWhenIdle(t *testing.T) {
	svc := newTimeService(t)

	stopped, err := svc.StopRunningTimer(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stopped)
}

func TestStopRunningTimer_ClosesEntry(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	started, err := svc.StartTimer(ctx, TimerStart{Title: "focus"})
	require.NoError(t, err)

	stopped, err := svc.StopRunningTimer(ctx)
	require.NoError(t, err)
	require.NotNil(t, stopped)
	assert.Equal(t, started.ID, stopped.ID)
	require.NotNil(t, stopped.EndedAt)
	assert.GreaterOrEqual(t, stopped.DurationSec, int64(0))

	running, err := svc.Running(ctx)
	require.NoError(t, err)
	assert.Nil(t, running)
}

func TestLogManual_DurationAnchoredToDayStart(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 12, 18, 45, 0, 0, time.UTC)
	entry, err := svc.LogManual(ctx, ManualEntry{
		Day:      day,
		Duration: 90 * time.Minute,
		Title:    "planning",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-12", entry.Day)
	assert.Equal(t, int64(5400), entry.DurationSec)
	assert.Equal(t, domain.SourceManual, entry.Source)
	assert.Equal(t, domain.StartOfDay(day), entry.StartedAt)
	require.NotNil(t, entry.EndedAt)
}

func TestLogManual_ExplicitBounds(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	entry, err := svc.LogManual(ctx, ManualEntry{
		StartedAt: &start,
		EndedAt:   &end,
		Title:     "meeting",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7200), entry.DurationSec)
	assert.Equal(t, "2025-03-12", entry.Day)
}

func TestLogManual_Validation(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	// No duration and no bounds
	_, err := svc.LogManual(ctx, ManualEntry{Day: time.Now(), Title: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// End before start
	start := time.Now()
	end := start.Add(-time.Hour)
	_, err = svc.LogManual(ctx, ManualEntry{StartedAt: &start, EndedAt: &end, Title: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateEntry_RederivesDurationAndDay(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	entry, err := svc.LogManual(ctx, ManualEntry{Day: day, Duration: time.Hour, Title: "draft"})
	require.NoError(t, err)

	newStart := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(30 * time.Minute)
	require.NoError(t, svc.UpdateEntry(ctx, entry.ID, domain.TimeEntryUpdate{
		StartedAt: &newStart,
		EndedAt:   &newEnd,
	}))

	entries, err := svc.ListDay(ctx, newStart)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1800), entries[0].DurationSec)
	assert.Equal(t, "2025-03-14", entries[0].Day)
}

func TestUpdateEntry_RejectsRunningTimer(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	entry, err := svc.StartTimer(ctx, TimerStart{Title: "live"})
	require.NoError(t, err)

	note := "oops"
	err = svc.UpdateEntry(ctx, entry.ID, domain.TimeEntryUpdate{Note: &note})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWeekSummary(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	// A Wednesday; both entries land in the same Monday-to-Sunday week
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	prevSunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := svc.LogManual(ctx, ManualEntry{Day: wednesday, Duration: time.Hour, Title: "writing"})
	require.NoError(t, err)
	_, err = svc.LogManual(ctx, ManualEntry{Day: monday, Duration: 30 * time.Minute, Title: "writing"})
	require.NoError(t, err)
	_, err = svc.LogManual(ctx, ManualEntry{Day: prevSunday, Duration: time.Hour, Title: "out of range"})
	require.NoError(t, err)

	summary, err := svc.WeekSummary(ctx, wednesday)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.EntryCount)
	assert.Equal(t, int64(5400), summary.TotalSeconds)
	assert.Equal(t, int64(5400), summary.TaskBreakdown["writing"])
}

func TestWatchWeek_DeliversUpdatedSummaries(t *testing.T) {
	svc := newTimeService(t)
	ctx := context.Background()

	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	_, err := svc.LogManual(ctx, ManualEntry{Day: wednesday, Duration: time.Hour, Title: "writing"})
	require.NoError(t, err)

	ch, cancel, err := svc.WatchWeek(ctx, wednesday)
	require.NoError(t, err)
	defer cancel()

	select {
	case summary := <-ch:
		assert.Equal(t, 1, summary.EntryCount)
		assert.Equal(t, int64(3600), summary.TotalSeconds)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial summary")
	}

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err = svc.LogManual(ctx, ManualEntry{Day: monday, Duration: 30 * time.Minute, Title: "review"})
	require.NoError(t, err)

	select {
	case summary := <-ch:
		assert.Equal(t, 2, summary.EntryCount)
		assert.Equal(t, int64(5400), summary.TotalSeconds)
		assert.Equal(t, int64(1800), summary.TaskBreakdown["review"])
	case <-time.After(2 * time.Second):
		t.Fatal("no summary after write")
	}
}
