package ports

import (
	"context"
	"time"

	"pulse/internal/domain"
)

// MilestoneReader reads milestone data
type MilestoneReader interface {
	Get(ctx context.Context, id string) (*domain.Milestone, error)
	ListByStatus(ctx context.Context, status domain.MilestoneStatus) ([]domain.Milestone, error)
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]domain.Milestone, error)
	ListEndingBetween(ctx context.Context, start, end time.Time) ([]domain.Milestone, error)
	CountByStatus(ctx context.Context, status domain.MilestoneStatus) (int64, error)
}

// MilestoneWriter creates, mutates, and deletes milestones
type MilestoneWriter interface {
	Add(ctx context.Context, milestone domain.Milestone) error
	Update(ctx context.Context, id string, update domain.MilestoneUpdate) error
	SetProgress(ctx context.Context, id string, progress int, status domain.MilestoneStatus) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) ([]string, error)
}

// MilestoneWatcher delivers live milestone query results
type MilestoneWatcher interface {
	WatchByStatus(ctx context.Context, status domain.MilestoneStatus) (<-chan []domain.Milestone, func(), error)
}

// MilestoneRepository is the composite interface
type MilestoneRepository interface {
	MilestoneReader
	MilestoneWriter
	MilestoneWatcher
}
