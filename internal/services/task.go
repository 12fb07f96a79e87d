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

// recentFeedSize is how many tasks the dashboard feed shows
const recentFeedSize = 8

// TaskService manages planner tasks. Every write that can move a
// milestone's task counts triggers a best-effort progress recompute.
type TaskService struct {
	tasks      ports.TaskRepository
	milestones *MilestoneService
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks ports.TaskRepository, milestones *MilestoneService) *TaskService {
	return &TaskService{
		tasks:      tasks,
		milestones: milestones,
	}
}

// Add creates a task. Title and a valid priority are required; new tasks
// always start incomplete regardless of the input.
func (s *TaskService) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return domain.Task{}, fmt.Errorf("%w: task title is required", domain.ErrValidation)
	}
	if !domain.ValidPriority(task.Priority) {
		return domain.Task{}, fmt.Errorf("%w: priority must be low, medium or high", domain.ErrValidation)
	}
	if task.Urgency != "" && !domain.ValidUrgency(task.Urgency) {
		return domain.Task{}, fmt.Errorf("%w: unknown urgency %q", domain.ErrValidation, task.Urgency)
	}
	if task.MilestoneID != "" {
		if _, err := s.milestones.Get(ctx, task.MilestoneID); err != nil {
			return domain.Task{}, fmt.Errorf("failed to resolve milestone: %w", err)
		}
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.Completed = false
	task.CreatedAt = time.Now().UTC()

	if err := s.tasks.Add(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("failed to add task: %w", err)
	}

	logging.Logger.Info("Task created", "id", task.ID, "title", task.Title, "milestone_id", task.MilestoneID)
	s.milestones.RecomputeBestEffort(ctx, task.MilestoneID)
	return task, nil
}

// Update applies user edits. Completion and milestone linkage are not
// part of TaskUpdate; they have dedicated operations so progress
// recomputation cannot be bypassed.
func (s *TaskService) Update(ctx context.Context, id string, update domain.TaskUpdate) error {
	if update.Empty() {
		return nil
	}
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return fmt.Errorf("%w: task title cannot be empty", domain.ErrValidation)
		}
		update.Title = &trimmed
	}
	if update.Priority != nil && !domain.ValidPriority(*update.Priority) {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *update.Priority)
	}
	if update.Urgency != nil && !domain.ValidUrgency(*update.Urgency) {
		return fmt.Errorf("%w: unknown urgency %q", domain.ErrValidation, *update.Urgency)
	}

	if err := s.tasks.Update(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// MoveToMilestone relinks a task to another milestone, or unlinks it
// when milestoneID is empty. Both the old and new milestone get their
// progress recomputed.
func (s *TaskService) MoveToMilestone(ctx context.Context, id, milestoneID string) error {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if task.MilestoneID == milestoneID {
		return nil
	}
	if milestoneID != "" {
		if _, err := s.milestones.Get(ctx, milestoneID); err != nil {
			return err
		}
	}

	if err := s.tasks.UpdateMilestone(ctx, id, milestoneID); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	logging.Logger.Info("Task moved", "id", id, "from", task.MilestoneID, "to", milestoneID)
	s.milestones.RecomputeBestEffort(ctx, task.MilestoneID)
	s.milestones.RecomputeBestEffort(ctx, milestoneID)
	return nil
}

// SetCompletion toggles a task's done state and recomputes the linked
// milestone's progress.
func (s *TaskService) SetCompletion(ctx context.Context, id string, completed bool) error {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.UpdateCompletion(ctx, id, completed); err != nil {
		return fmt.Errorf("failed to update task completion: %w", err)
	}

	logging.Logger.Info("Task completion changed", "id", id, "completed", completed)
	s.milestones.RecomputeBestEffort(ctx, task.MilestoneID)
	return nil
}

// Delete removes a task and recomputes the linked milestone's progress.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logging.Logger.Info("Task deleted", "id", id)
	s.milestones.RecomputeBestEffort(ctx, task.MilestoneID)
	return nil
}

// Get returns a task by ID.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.Get(ctx, id)
}

// RecentFeed returns the newest tasks for the dashboard feed.
func (s *TaskService) RecentFeed(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.ListRecent(ctx, recentFeedSize)
}

// ListForDay returns tasks scheduled on the given calendar day.
func (s *TaskService) ListForDay(ctx context.Context, day time.Time) ([]domain.Task, error) {
	return s.tasks.ListByDateRange(ctx, domain.StartOfDay(day), domain.EndOfDay(day))
}

// ListForMilestone returns the tasks linked to a milestone.
func (s *TaskService) ListForMilestone(ctx context.Context, milestoneID string) ([]domain.Task, error) {
	return s.tasks.ListForMilestone(ctx, milestoneID)
}

// ListAll returns every task.
func (s *TaskService) ListAll(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.ListAll(ctx)
}

// CountForDay returns total and completed counts for a calendar day.
func (s *TaskService) CountForDay(ctx context.Context, day time.Time) (domain.TaskCounts, error) {
	return s.tasks.CountForDateRange(ctx, domain.StartOfDay(day), domain.EndOfDay(day))
}

// DeleteAll wipes every task. Used by the danger-zone reset. Milestone
// progress is deliberately left as-is: milestones keep their recorded
// progress until the next mutation touches them.
func (s *TaskService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.tasks.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}
	logging.Logger.Info("All tasks deleted", "count", n)
	return n, nil
}

// WatchRecent exposes the live recent-task feed for dashboards.
func (s *TaskService) WatchRecent(ctx context.Context) (<-chan []domain.Task, func(), error) {
	return s.tasks.WatchRecent(ctx, recentFeedSize)
}
