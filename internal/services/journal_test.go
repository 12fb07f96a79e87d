package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain"
)

func newJournalService(t *testing.T) *JournalService {
	t.Helper()
	return NewJournalService(newTestStore(t).Journal, "u-test")
}

func TestLogSatisfaction_Validation(t *testing.T) {
	svc := newJournalService(t)
	ctx := context.Background()
	day := time.Now()

	_, err := svc.LogSatisfaction(ctx, day, 0, domain.MoodHappy, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.LogSatisfaction(ctx, day, 11, domain.MoodHappy, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.LogSatisfaction(ctx, day, 5, "ecstatic", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogSatisfaction_UpsertsByDay(t *testing.T) {
	svc := newJournalService(t)
	ctx := context.Background()

	morning := time.Date(2025, 4, 3, 9, 0, 0, 0, time.Local)
	evening := time.Date(2025, 4, 3, 21, 30, 0, 0, time.Local)

	first, err := svc.LogSatisfaction(ctx, morning, 7, domain.MoodOkay, "decent start")
	require.NoError(t, err)

	second, err := svc.LogSatisfaction(ctx, evening, 9, domain.MoodHappy, "great finish")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same calendar day overwrites, never duplicates")

	recent, err := svc.RecentSatisfaction(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 9, recent[0].Score)
	assert.Equal(t, domain.MoodHappy, recent[0].Mood)
}

func TestSatisfactionSummary_Deltas(t *testing.T) {
	svc := newJournalService(t)
	ctx := context.Background()

	// No logs yet: both fields nil
	summary, err := svc.SatisfactionSummary(ctx)
	require.NoError(t, err)
	assert.Nil(t, summary.CurrentScore)
	assert.Nil(t, summary.Change)

	day1 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.Local)
	_, err = svc.LogSatisfaction(ctx, day1, 6, domain.MoodOkay, "")
	require.NoError(t, err)

	summary, err = svc.SatisfactionSummary(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary.CurrentScore)
	assert.Equal(t, 6, *summary.CurrentScore)
	assert.Nil(t, summary.Change, "one log is not enough for a delta")

	day2 := day1.AddDate(0, 0, 1)
	_, err = svc.LogSatisfaction(ctx, day2, 9, domain.MoodCool, "")
	require.NoError(t, err)

	summary, err = svc.SatisfactionSummary(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary.CurrentScore)
	require.NotNil(t, summary.Change)
	assert.Equal(t, 9, *summary.CurrentScore)
	assert.Equal(t, 3, *summary.Change)
}

func TestMonthSatisfaction(t *testing.T) {
	svc := newJournalService(t)
	ctx := context.Background()

	inMonth := time.Date(2025, 4, 15, 10, 0, 0, 0, time.Local)
	lastOfMonth := time.Date(2025, 4, 30, 23, 0, 0, 0, time.Local)
	nextMonth := time.Date(2025, 5, 1, 0, 30, 0, 0, time.Local)

	_, err := svc.LogSatisfaction(ctx, inMonth, 5, domain.MoodOkay, "")
	require.NoError(t, err)
	_, err = svc.LogSatisfaction(ctx, lastOfMonth, 8, domain.MoodHappy, "")
	require.NoError(t, err)
	_, err = svc.LogSatisfaction(ctx, nextMonth, 2, domain.MoodAngry, "")
	require.NoError(t, err)

	logs, err := svc.MonthSatisfaction(ctx, 2025, time.April)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestAddStandup_Validation(t *testing.T) {
	svc := newJournalService(t)

	_, err := svc.AddStandup(context.Background(), nil, nil, []string{"blocked on review"}, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddStandup_AndRecent(t *testing.T) {
	svc := newJournalService(t)
	ctx := context.Background()

	created, err := svc.AddStandup(ctx,
		[]string{"finished importer"},
		[]string{"start exporter"},
		nil,
		"short day")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	recent, err := svc.RecentStandups(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, []string{"finished importer"}, recent[0].Completed)
	assert.Equal(t, []string{"start exporter"}, recent[0].Planned)
	assert.Empty(t, recent[0].Blockers)
}

func TestJournalDeleteAll(t *testing.T) {
	svc := newJournalService(t)
	ctx := context.Background()

	_, err := svc.LogSatisfaction(ctx, time.Now(), 5, domain.MoodOkay, "")
	require.NoError(t, err)
	_, err = svc.AddStandup(ctx, []string{"x"}, nil, nil, "")
	require.NoError(t, err)

	satisfaction, standups, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), satisfaction)
	assert.Equal(t, int64(1), standups)
}
