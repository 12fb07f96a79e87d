package ports

import (
	"context"
	"time"

	"pulse/internal/domain"
)

// TaskReader reads task data
type TaskReader interface {
	Get(ctx context.Context, id string) (*domain.Task, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Task, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Task, error)
	ListForMilestone(ctx context.Context, milestoneID string) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
}

// TaskCounter runs server-side count queries without fetching documents
type TaskCounter interface {
	CountForMilestone(ctx context.Context, milestoneID string) (domain.TaskCounts, error)
	CountForDateRange(ctx context.Context, start, end time.Time) (domain.TaskCounts, error)
}

// TaskWriter creates, mutates, and deletes tasks
type TaskWriter interface {
	Add(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, id string, update domain.TaskUpdate) error
	UpdateCompletion(ctx context.Context, id string, completed bool) error
	UpdateMilestone(ctx context.Context, id, milestoneID string) error
	UpdateQuadrant(ctx context.Context, id string, priority domain.Priority, urgency domain.Urgency) error
	UpdateQuadrantBulk(ctx context.Context, ids []string, priority domain.Priority, urgency domain.Urgency) error
	Delete(ctx context.Context, id string) error
	DeleteForMilestone(ctx context.Context, milestoneID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// TaskWatcher delivers live query results. The returned cancel function
// detaches the listener; forgetting to call it leaks the watch.
type TaskWatcher interface {
	WatchRecent(ctx context.Context, limit int) (<-chan []domain.Task, func(), error)
	WatchByDateRange(ctx context.Context, start, end time.Time) (<-chan []domain.Task, func(), error)
	WatchAll(ctx context.Context) (<-chan []domain.Task, func(), error)
}

// TaskRepository is the composite interface
type TaskRepository interface {
	TaskReader
	TaskCounter
	TaskWriter
	TaskWatcher
}
