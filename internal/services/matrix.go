package services

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/domain"
	"pulse/internal/logging"
	"pulse/internal/ports"
)

// MatrixService builds Eisenhower matrix views over tasks and handles
// quadrant drops. Classification itself lives in the domain package;
// this service only fetches the right task set and applies writes.
type MatrixService struct {
	tasks ports.TaskRepository
}

// NewMatrixService creates a new MatrixService
func NewMatrixService(tasks ports.TaskRepository) *MatrixService {
	return &MatrixService{tasks: tasks}
}

// Snapshot classifies tasks into quadrants. With a nil day the whole
// task list is used; with a day only tasks scheduled that day are.
func (s *MatrixService) Snapshot(ctx context.Context, day *time.Time) (domain.MatrixSnapshot, error) {
	tasks, err := s.fetch(ctx, day)
	if err != nil {
		return domain.MatrixSnapshot{}, err
	}
	return domain.GroupByQuadrant(tasks), nil
}

// Counts tallies the quadrant sizes without materializing the grouping.
func (s *MatrixService) Counts(ctx context.Context, day *time.Time) (domain.QuadrantCounts, error) {
	tasks, err := s.fetch(ctx, day)
	if err != nil {
		return domain.QuadrantCounts{}, err
	}
	return domain.CountByQuadrant(tasks), nil
}

// Categorize drops a task into a quadrant by rewriting its priority and
// urgency to that quadrant's values.
func (s *MatrixService) Categorize(ctx context.Context, id string, quadrant domain.Quadrant) error {
	if !domain.ValidQuadrant(quadrant) {
		return fmt.Errorf("%w: unknown quadrant %q", domain.ErrValidation, quadrant)
	}

	priority, urgency := domain.QuadrantValues(quadrant)
	if err := s.tasks.UpdateQuadrant(ctx, id, priority, urgency); err != nil {
		return fmt.Errorf("failed to categorize task: %w", err)
	}

	logging.Logger.Info("Task categorized", "id", id, "quadrant", quadrant)
	return nil
}

// CategorizeBulk drops several tasks into the same quadrant in a single
// atomic write.
func (s *MatrixService) CategorizeBulk(ctx context.Context, ids []string, quadrant domain.Quadrant) error {
	if len(ids) == 0 {
		return nil
	}
	if !domain.ValidQuadrant(quadrant) {
		return fmt.Errorf("%w: unknown quadrant %q", domain.ErrValidation, quadrant)
	}

	priority, urgency := domain.QuadrantValues(quadrant)
	if err := s.tasks.UpdateQuadrantBulk(ctx, ids, priority, urgency); err != nil {
		return fmt.Errorf("failed to categorize tasks: %w", err)
	}

	logging.Logger.Info("Tasks categorized", "count", len(ids), "quadrant", quadrant)
	return nil
}

// Watch exposes a live matrix snapshot for dashboards.
func (s *MatrixService) Watch(ctx context.Context, day *time.Time) (<-chan domain.MatrixSnapshot, func(), error) {
	var (
		ch     <-chan []domain.Task
		cancel func()
		err    error
	)
	if day == nil {
		ch, cancel, err = s.tasks.WatchAll(ctx)
	} else {
		ch, cancel, err = s.tasks.WatchByDateRange(ctx, domain.StartOfDay(*day), domain.EndOfDay(*day))
	}
	if err != nil {
		return nil, nil, err
	}

	out := make(chan domain.MatrixSnapshot, 1)
	go func() {
		defer close(out)
		for tasks := range ch {
			snap := domain.GroupByQuadrant(tasks)
			select {
			case out <- snap:
			default:
				// Drop the stale snapshot so the consumer only ever
				// sees the newest one.
				select {
				case <-out:
				default:
				}
				out <- snap
			}
		}
	}()
	return out, cancel, nil
}

func (s *MatrixService) fetch(ctx context.Context, day *time.Time) ([]domain.Task, error) {
	if day == nil {
		tasks, err := s.tasks.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		return tasks, nil
	}
	tasks, err := s.tasks.ListByDateRange(ctx, domain.StartOfDay(*day), domain.EndOfDay(*day))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for day: %w", err)
	}
	return tasks, nil
}
