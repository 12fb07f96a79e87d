package ports

import (
	"context"
	"time"

	"pulse/internal/domain"
)

// TimeEntryReader reads timesheet data
type TimeEntryReader interface {
	Get(ctx context.Context, id string) (*domain.TimeEntry, error)
	Running(ctx context.Context, userID string) (*domain.TimeEntry, error)
	ListByDayRange(ctx context.Context, userID, startDay, endDay string) ([]domain.TimeEntry, error)
}

// TimeEntryWriter creates, mutates, and deletes time entries
type TimeEntryWriter interface {
	Add(ctx context.Context, entry domain.TimeEntry) error
	Save(ctx context.Context, entry domain.TimeEntry) error
	Stop(ctx context.Context, id string, endedAt time.Time, durationSec int64) error
	Delete(ctx context.Context, id string) error
}

// TimerWatcher delivers the running entry whenever it changes; nil is
// published when no timer is running.
type TimerWatcher interface {
	WatchRunning(ctx context.Context, userID string) (<-chan *domain.TimeEntry, func(), error)
	WatchByDayRange(ctx context.Context, userID, startDay, endDay string) (<-chan []domain.TimeEntry, func(), error)
}

// TimeEntryRepository is the composite interface
type TimeEntryRepository interface {
	TimeEntryReader
	TimeEntryWriter
	TimerWatcher
}
