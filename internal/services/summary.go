package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pulse/internal/domain"
)

// DashboardSummary is the aggregate the home view renders: today's task
// progress, the milestone to focus on, the latest satisfaction trend and
// the newest tasks.
type DashboardSummary struct {
	ActiveMilestones int64
	NextMilestone    *domain.Milestone
	NextDaysLeft     int
	RecentTasks      []domain.Task
	Satisfaction     domain.SatisfactionSummary
	TodayTasks       domain.TaskCounts
}

// MilestoneOverview is one row of the milestone board.
type MilestoneOverview struct {
	DaysLeft   int
	Milestone  domain.Milestone
	TaskCounts domain.TaskCounts
}

// SummaryService composes the other services into read-only dashboard
// aggregates. It owns no writes.
type SummaryService struct {
	journal    *JournalService
	milestones *MilestoneService
	tasks      *TaskService
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(tasks *TaskService, milestones *MilestoneService, journal *JournalService) *SummaryService {
	return &SummaryService{
		journal:    journal,
		milestones: milestones,
		tasks:      tasks,
	}
}

// Dashboard fetches all home-view data concurrently.
func (s *SummaryService) Dashboard(ctx context.Context, now time.Time) (DashboardSummary, error) {
	var summary DashboardSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.tasks.CountForDay(gctx, now)
		if err != nil {
			return fmt.Errorf("failed to count today's tasks: %w", err)
		}
		summary.TodayTasks = counts
		return nil
	})
	g.Go(func() error {
		next, err := s.milestones.NextActive(gctx, now)
		if err != nil {
			return err
		}
		summary.NextMilestone = next
		if next != nil {
			summary.NextDaysLeft = domain.DaysLeft(next.EndDate, now)
		}
		return nil
	})
	g.Go(func() error {
		count, err := s.milestones.milestones.CountByStatus(gctx, domain.StatusActive)
		if err != nil {
			return fmt.Errorf("failed to count active milestones: %w", err)
		}
		summary.ActiveMilestones = count
		return nil
	})
	g.Go(func() error {
		sat, err := s.journal.SatisfactionSummary(gctx)
		if err != nil {
			return err
		}
		summary.Satisfaction = sat
		return nil
	})
	g.Go(func() error {
		recent, err := s.tasks.RecentFeed(gctx)
		if err != nil {
			return fmt.Errorf("failed to list recent tasks: %w", err)
		}
		summary.RecentTasks = recent
		return nil
	})
	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}
	return summary, nil
}

// MilestoneBoard returns every milestone in the given status with its
// task counts and countdown, counts fetched concurrently per milestone.
func (s *SummaryService) MilestoneBoard(ctx context.Context, status domain.MilestoneStatus, now time.Time) ([]MilestoneOverview, error) {
	milestones, err := s.milestones.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	overviews := make([]MilestoneOverview, len(milestones))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range milestones {
		g.Go(func() error {
			counts, err := s.tasks.tasks.CountForMilestone(gctx, m.ID)
			if err != nil {
				return fmt.Errorf("failed to count tasks for milestone %s: %w", m.ID, err)
			}
			overviews[i] = MilestoneOverview{
				DaysLeft:   domain.DaysLeft(m.EndDate, now),
				Milestone:  m,
				TaskCounts: counts,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overviews, nil
}
