package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pulse/internal/domain"
	"pulse/internal/logging"
	"pulse/internal/ports"
)

// MilestoneService manages milestones and owns the progress engine:
// whenever linked tasks change, Recompute rederives progress from task
// counts and applies the automatic status transitions.
type MilestoneService struct {
	milestones ports.MilestoneRepository
	tasks      ports.TaskRepository
}

// NewMilestoneService creates a new MilestoneService
func NewMilestoneService(milestones ports.MilestoneRepository, tasks ports.TaskRepository) *MilestoneService {
	return &MilestoneService{
		milestones: milestones,
		tasks:      tasks,
	}
}

// Add creates a milestone. Progress always starts at 0 and status
// defaults to active; a missing start date is stamped with now.
func (s *MilestoneService) Add(ctx context.Context, milestone domain.Milestone) (domain.Milestone, error) {
	milestone.Title = strings.TrimSpace(milestone.Title)
	if milestone.Title == "" {
		return domain.Milestone{}, fmt.Errorf("%w: milestone title is required", domain.ErrValidation)
	}
	if milestone.Urgency != "" && !domain.ValidUrgency(milestone.Urgency) {
		return domain.Milestone{}, fmt.Errorf("%w: unknown urgency %q", domain.ErrValidation, milestone.Urgency)
	}
	if milestone.Status == "" {
		milestone.Status = domain.StatusActive
	}
	if !domain.ValidMilestoneStatus(milestone.Status) {
		return domain.Milestone{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, milestone.Status)
	}
	if milestone.ID == "" {
		milestone.ID = uuid.New().String()
	}
	if milestone.StartDate == nil {
		now := time.Now().UTC()
		milestone.StartDate = &now
	}
	milestone.Progress = 0

	if err := s.milestones.Add(ctx, milestone); err != nil {
		return domain.Milestone{}, fmt.Errorf("failed to add milestone: %w", err)
	}

	logging.Logger.Info("Milestone created", "id", milestone.ID, "title", milestone.Title)
	return milestone, nil
}

// Update applies user edits. Progress is not an editable field; a status
// edit is validated but otherwise honored as a manual override, and the
// next recompute may transition it again.
func (s *MilestoneService) Update(ctx context.Context, id string, update domain.MilestoneUpdate) error {
	if update.Empty() {
		return nil
	}
	if update.Status != nil && !domain.ValidMilestoneStatus(*update.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *update.Status)
	}
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return fmt.Errorf("%w: milestone title cannot be empty", domain.ErrValidation)
		}
		update.Title = &trimmed
	}
	if update.Urgency != nil && !domain.ValidUrgency(*update.Urgency) {
		return fmt.Errorf("%w: unknown urgency %q", domain.ErrValidation, *update.Urgency)
	}

	if err := s.milestones.Update(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	return nil
}

// Get returns a milestone by ID.
func (s *MilestoneService) Get(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.Get(ctx, id)
}

// ListByStatus returns milestones in the given lifecycle state.
func (s *MilestoneService) ListByStatus(ctx context.Context, status domain.MilestoneStatus) ([]domain.Milestone, error) {
	if !domain.ValidMilestoneStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	return s.milestones.ListByStatus(ctx, status)
}

// NextActive returns the active milestone with the soonest upcoming end
// date, or nil when none qualifies.
func (s *MilestoneService) NextActive(ctx context.Context, now time.Time) (*domain.Milestone, error) {
	upcoming, err := s.milestones.ListUpcoming(ctx, domain.StartOfDay(now), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming milestones: %w", err)
	}
	if len(upcoming) == 0 {
		return nil, nil
	}
	return &upcoming[0], nil
}

// Delete removes a milestone. With cascade set, linked tasks are deleted
// in the same pass; otherwise they survive as orphans pointing nowhere.
func (s *MilestoneService) Delete(ctx context.Context, id string, cascade bool) (int64, error) {
	var deletedTasks int64
	if cascade {
		n, err := s.tasks.DeleteForMilestone(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("failed to delete milestone tasks: %w", err)
		}
		deletedTasks = n
	}

	if err := s.milestones.Delete(ctx, id); err != nil {
		return deletedTasks, fmt.Errorf("failed to delete milestone: %w", err)
	}

	logging.Logger.Info("Milestone deleted", "id", id, "cascade", cascade, "deleted_tasks", deletedTasks)
	return deletedTasks, nil
}

// Recompute rederives a milestone's progress from its linked task counts
// and applies the automatic status transition. The write is skipped when
// nothing changed, so repeated calls are idempotent.
func (s *MilestoneService) Recompute(ctx context.Context, milestoneID string) error {
	var (
		milestone *domain.Milestone
		counts    domain.TaskCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.milestones.Get(gctx, milestoneID)
		if err != nil {
			return err
		}
		milestone = m
		return nil
	})
	g.Go(func() error {
		c, err := s.tasks.CountForMilestone(gctx, milestoneID)
		if err != nil {
			return err
		}
		counts = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load milestone state: %w", err)
	}

	progress := domain.MilestoneProgress(counts.Completed, counts.Total)
	status := domain.NextStatus(milestone.Status, progress)

	if progress == milestone.Progress && status == milestone.Status {
		return nil
	}

	if err := s.milestones.SetProgress(ctx, milestoneID, progress, status); err != nil {
		return fmt.Errorf("failed to store milestone progress: %w", err)
	}

	logging.Logger.Debug("Milestone progress recomputed",
		"id", milestoneID,
		"progress", progress,
		"status", status,
		"completed", counts.Completed,
		"total", counts.Total)
	return nil
}

// RecomputeBestEffort runs Recompute for a secondary effect of a task
// write. Failures are logged and swallowed so the task operation that
// triggered them still succeeds; the next write will converge the state.
func (s *MilestoneService) RecomputeBestEffort(ctx context.Context, milestoneID string) {
	if milestoneID == "" {
		return
	}
	if err := s.Recompute(ctx, milestoneID); err != nil {
		logging.Logger.Error("Milestone recompute failed", "id", milestoneID, "error", err)
	}
}

// DeleteAll wipes every milestone and, with cascade, their linked tasks.
// Used by the danger-zone reset.
func (s *MilestoneService) DeleteAll(ctx context.Context, cascade bool) (int, int64, error) {
	ids, err := s.milestones.DeleteAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete milestones: %w", err)
	}

	var deletedTasks int64
	if cascade {
		for _, id := range ids {
			n, err := s.tasks.DeleteForMilestone(ctx, id)
			if err != nil {
				return len(ids), deletedTasks, fmt.Errorf("failed to delete tasks for milestone %s: %w", id, err)
			}
			deletedTasks += n
		}
	}

	logging.Logger.Info("All milestones deleted", "milestones", len(ids), "deleted_tasks", deletedTasks)
	return len(ids), deletedTasks, nil
}

// WatchByStatus exposes the live milestone list for dashboards.
func (s *MilestoneService) WatchByStatus(ctx context.Context, status domain.MilestoneStatus) (<-chan []domain.Milestone, func(), error) {
	return s.milestones.WatchByStatus(ctx, status)
}
