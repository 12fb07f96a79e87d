package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pulse/internal/domain"
	"pulse/internal/logging"
	"pulse/internal/ports"
)

// TimerStart carries the optional context attached to a starting timer.
type TimerStart struct {
	MilestoneID string
	Note        string
	Tags        []string
	TaskID      string
	Title       string
}

// ManualEntry describes a hand-logged timesheet entry. When StartedAt is
// nil the entry is anchored at the start of Day and runs for Duration;
// when both bounds are given the duration is derived from them.
type ManualEntry struct {
	Day         time.Time
	Duration    time.Duration
	EndedAt     *time.Time
	MilestoneID string
	Note        string
	StartedAt   *time.Time
	Tags        []string
	TaskID      string
	Title       string
}

// TimeService manages the timesheet and the single running timer. All
// operations are scoped to the configured user.
type TimeService struct {
	entries ports.TimeEntryRepository
	userID  string
}

// NewTimeService creates a new TimeService
func NewTimeService(entries ports.TimeEntryRepository, userID string) *TimeService {
	return &TimeService{
		entries: entries,
		userID:  userID,
	}
}

// StartTimer begins a new running timer. Any timer already running is
// stopped first so at most one open entry exists per user; the stop and
// the start are sequential writes, not one transaction, which is
// acceptable for a single-user timesheet.
func (s *TimeService) StartTimer(ctx context.Context, start TimerStart) (domain.TimeEntry, error) {
	title := strings.TrimSpace(start.Title)
	if title == "" {
		return domain.TimeEntry{}, fmt.Errorf("%w: timer title is required", domain.ErrValidation)
	}

	if _, err := s.StopRunningTimer(ctx); err != nil {
		return domain.TimeEntry{}, err
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		CreatedAt:     now,
		Day:           domain.DayString(now),
		ID:            uuid.New().String(),
		MilestoneID:   start.MilestoneID,
		Note:          start.Note,
		Source:        domain.SourceTimer,
		StartedAt:     now,
		Tags:          start.Tags,
		TaskID:        start.TaskID,
		TitleSnapshot: title,
		UpdatedAt:     now,
		UserID:        s.userID,
	}

	if err := s.entries.Add(ctx, entry); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("failed to start timer: %w", err)
	}

	logging.Logger.Info("Timer started", "id", entry.ID, "title", title)
	return entry, nil
}

// StopRunningTimer closes the user's open timer and returns the stopped
// entry. Returns nil with no error when no timer is running.
func (s *TimeService) StopRunningTimer(ctx context.Context) (*domain.TimeEntry, error) {
	running, err := s.entries.Running(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find running timer: %w", err)
	}
	if running == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	duration := int64(now.Sub(running.StartedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	if err := s.entries.Stop(ctx, running.ID, now, duration); err != nil {
		return nil, fmt.Errorf("failed to stop timer: %w", err)
	}

	running.EndedAt = &now
	running.DurationSec = duration

	logging.Logger.Info("Timer stopped", "id", running.ID, "duration_sec", duration)
	return running, nil
}

// Running returns the open timer entry, or nil when idle.
func (s *TimeService) Running(ctx context.Context) (*domain.TimeEntry, error) {
	return s.entries.Running(ctx, s.userID)
}

// LogManual records a completed entry without a timer.
func (s *TimeService) LogManual(ctx context.Context, manual ManualEntry) (domain.TimeEntry, error) {
	title := strings.TrimSpace(manual.Title)
	if title == "" {
		return domain.TimeEntry{}, fmt.Errorf("%w: entry title is required", domain.ErrValidation)
	}

	var startedAt, endedAt time.Time
	switch {
	case manual.StartedAt != nil && manual.EndedAt != nil:
		startedAt = *manual.StartedAt
		endedAt = *manual.EndedAt
		if !endedAt.After(startedAt) {
			return domain.TimeEntry{}, fmt.Errorf("%w: entry must end after it starts", domain.ErrValidation)
		}
	case manual.Duration > 0:
		startedAt = domain.StartOfDay(manual.Day)
		endedAt = startedAt.Add(manual.Duration)
	default:
		return domain.TimeEntry{}, fmt.Errorf("%w: either a duration or both time bounds are required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		CreatedAt:     now,
		Day:           domain.DayString(startedAt),
		DurationSec:   int64(endedAt.Sub(startedAt).Seconds()),
		EndedAt:       &endedAt,
		ID:            uuid.New().String(),
		MilestoneID:   manual.MilestoneID,
		Note:          manual.Note,
		Source:        domain.SourceManual,
		StartedAt:     startedAt,
		Tags:          manual.Tags,
		TaskID:        manual.TaskID,
		TitleSnapshot: title,
		UpdatedAt:     now,
		UserID:        s.userID,
	}

	if err := s.entries.Add(ctx, entry); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("failed to log entry: %w", err)
	}

	logging.Logger.Info("Manual entry logged", "id", entry.ID, "duration_sec", entry.DurationSec)
	return entry, nil
}

// UpdateEntry edits a closed entry. When either time bound moves, the
// duration and the day bucket are rederived from the new bounds.
func (s *TimeService) UpdateEntry(ctx context.Context, id string, update domain.TimeEntryUpdate) error {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	if entry.Running() {
		return fmt.Errorf("%w: cannot edit the running timer", domain.ErrValidation)
	}

	if update.TitleSnapshot != nil {
		trimmed := strings.TrimSpace(*update.TitleSnapshot)
		if trimmed == "" {
			return fmt.Errorf("%w: entry title cannot be empty", domain.ErrValidation)
		}
		entry.TitleSnapshot = trimmed
	}
	if update.Note != nil {
		entry.Note = *update.Note
	}
	if update.Tags != nil {
		entry.Tags = *update.Tags
	}
	if update.StartedAt != nil {
		entry.StartedAt = *update.StartedAt
	}
	if update.EndedAt != nil {
		entry.EndedAt = update.EndedAt
	}
	if update.StartedAt != nil || update.EndedAt != nil {
		if entry.EndedAt == nil || !entry.EndedAt.After(entry.StartedAt) {
			return fmt.Errorf("%w: entry must end after it starts", domain.ErrValidation)
		}
		entry.DurationSec = int64(entry.EndedAt.Sub(entry.StartedAt).Seconds())
		entry.Day = domain.DayString(entry.StartedAt)
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := s.entries.Save(ctx, *entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return nil
}

// DeleteEntry removes a timesheet entry.
func (s *TimeService) DeleteEntry(ctx context.Context, id string) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	logging.Logger.Info("Time entry deleted", "id", id)
	return nil
}

// ListDay returns the entries started on the given calendar day.
func (s *TimeService) ListDay(ctx context.Context, day time.Time) ([]domain.TimeEntry, error) {
	bucket := domain.DayString(day)
	return s.entries.ListByDayRange(ctx, s.userID, bucket, bucket)
}

// ListWeek returns the entries of the Monday-to-Sunday week containing
// the given day.
func (s *TimeService) ListWeek(ctx context.Context, day time.Time) ([]domain.TimeEntry, error) {
	start, end := weekBounds(day)
	return s.entries.ListByDayRange(ctx, s.userID, domain.DayString(start), domain.DayString(end))
}

// WeekSummary aggregates the week's entries into totals and a per-title
// breakdown. The running timer contributes its elapsed time so far.
func (s *TimeService) WeekSummary(ctx context.Context, day time.Time) (domain.WeeklySummary, error) {
	entries, err := s.ListWeek(ctx, day)
	if err != nil {
		return domain.WeeklySummary{}, fmt.Errorf("failed to list week entries: %w", err)
	}

	return summarizeEntries(entries), nil
}

// summarizeEntries folds a set of entries into weekly totals. A running
// entry contributes its elapsed time so far.
func summarizeEntries(entries []domain.TimeEntry) domain.WeeklySummary {
	summary := domain.WeeklySummary{TaskBreakdown: make(map[string]int64)}
	now := time.Now().UTC()
	for _, e := range entries {
		seconds := e.DurationSec
		if e.Running() {
			seconds = int64(now.Sub(e.StartedAt).Seconds())
			if seconds < 0 {
				seconds = 0
			}
		}
		summary.EntryCount++
		summary.TotalSeconds += seconds
		summary.TaskBreakdown[e.TitleSnapshot] += seconds
	}
	return summary
}

// WatchRunning exposes the live running-timer state for dashboards.
func (s *TimeService) WatchRunning(ctx context.Context) (<-chan *domain.TimeEntry, func(), error) {
	return s.entries.WatchRunning(ctx, s.userID)
}

// WatchWeek delivers a recomputed weekly summary whenever an entry in
// the week containing day changes.
func (s *TimeService) WatchWeek(ctx context.Context, day time.Time) (<-chan domain.WeeklySummary, func(), error) {
	start, end := weekBounds(day)
	entries, cancel, err := s.entries.WatchByDayRange(ctx, s.userID, domain.DayString(start), domain.DayString(end))
	if err != nil {
		return nil, nil, err
	}

	out := make(chan domain.WeeklySummary, 1)
	go func() {
		defer close(out)
		for batch := range entries {
			summary := summarizeEntries(batch)
			// Drop the stale summary if the consumer is behind
			select {
			case <-out:
			default:
			}
			out <- summary
		}
	}()
	return out, cancel, nil
}

// weekBounds returns the Monday and Sunday of the week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	day := domain.StartOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	start := day.AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 6)
	return start, end
}
