package ports

import (
	"context"
	"time"

	"pulse/internal/domain"
)

// SatisfactionReader reads satisfaction logs
type SatisfactionReader interface {
	ListRecentSatisfaction(ctx context.Context, userID string, limit int) ([]domain.SatisfactionLog, error)
	ListSatisfactionBetween(ctx context.Context, userID string, start, end time.Time) ([]domain.SatisfactionLog, error)
	FindSatisfactionForDay(ctx context.Context, userID string, day time.Time) (*domain.SatisfactionLog, error)
}

// SatisfactionWriter creates and updates satisfaction logs
type SatisfactionWriter interface {
	AddSatisfaction(ctx context.Context, log domain.SatisfactionLog) error
	SaveSatisfaction(ctx context.Context, log domain.SatisfactionLog) error
	DeleteAllSatisfaction(ctx context.Context, userID string) (int64, error)
}

// StandupReader reads standup logs
type StandupReader interface {
	ListRecentStandups(ctx context.Context, userID string, limit int) ([]domain.StandupLog, error)
}

// StandupWriter creates standup logs
type StandupWriter interface {
	AddStandup(ctx context.Context, log domain.StandupLog) error
	DeleteAllStandups(ctx context.Context, userID string) (int64, error)
}

// JournalWatcher delivers live journal query results
type JournalWatcher interface {
	WatchRecentSatisfaction(ctx context.Context, userID string, limit int) (<-chan []domain.SatisfactionLog, func(), error)
}

// JournalRepository is the composite interface
type JournalRepository interface {
	SatisfactionReader
	SatisfactionWriter
	StandupReader
	StandupWriter
	JournalWatcher
}
