package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pulse/internal/domain"
	"pulse/internal/logging"
	"pulse/internal/ports"
)

// JournalService manages satisfaction scores and standup logs for the
// configured user.
type JournalService struct {
	journal ports.JournalRepository
	userID  string
}

// NewJournalService creates a new JournalService
func NewJournalService(journal ports.JournalRepository, userID string) *JournalService {
	return &JournalService{
		journal: journal,
		userID:  userID,
	}
}

// LogSatisfaction records a score for a calendar day. A second log on
// the same day overwrites the first; there is never more than one entry
// per day.
func (s *JournalService) LogSatisfaction(ctx context.Context, day time.Time, score int, mood domain.Mood, notes string) (domain.SatisfactionLog, error) {
	if score < 1 || score > 10 {
		return domain.SatisfactionLog{}, fmt.Errorf("%w: score must be between 1 and 10", domain.ErrValidation)
	}
	if !domain.ValidMood(mood) {
		return domain.SatisfactionLog{}, fmt.Errorf("%w: unknown mood %q", domain.ErrValidation, mood)
	}

	existing, err := s.journal.FindSatisfactionForDay(ctx, s.userID, day)
	if err != nil {
		return domain.SatisfactionLog{}, fmt.Errorf("failed to look up satisfaction log: %w", err)
	}

	if existing != nil {
		existing.Mood = mood
		existing.Notes = notes
		existing.Score = score
		if err := s.journal.SaveSatisfaction(ctx, *existing); err != nil {
			return domain.SatisfactionLog{}, fmt.Errorf("failed to update satisfaction log: %w", err)
		}
		logging.Logger.Info("Satisfaction log updated", "id", existing.ID, "score", score, "mood", mood)
		return *existing, nil
	}

	log := domain.SatisfactionLog{
		Date:   day,
		ID:     uuid.New().String(),
		Mood:   mood,
		Notes:  notes,
		Score:  score,
		UserID: s.userID,
	}
	if err := s.journal.AddSatisfaction(ctx, log); err != nil {
		return domain.SatisfactionLog{}, fmt.Errorf("failed to add satisfaction log: %w", err)
	}

	logging.Logger.Info("Satisfaction logged", "id", log.ID, "score", score, "mood", mood)
	return log, nil
}

// RecentSatisfaction returns the newest satisfaction logs.
func (s *JournalService) RecentSatisfaction(ctx context.Context, limit int) ([]domain.SatisfactionLog, error) {
	return s.journal.ListRecentSatisfaction(ctx, s.userID, limit)
}

// MonthSatisfaction returns the logs of one calendar month for the
// satisfaction calendar view.
func (s *JournalService) MonthSatisfaction(ctx context.Context, year int, month time.Month) ([]domain.SatisfactionLog, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	return s.journal.ListSatisfactionBetween(ctx, s.userID, start, end)
}

// SatisfactionSummary returns the latest score and its delta from the
// entry before it. Fields stay nil until enough logs exist.
func (s *JournalService) SatisfactionSummary(ctx context.Context) (domain.SatisfactionSummary, error) {
	recent, err := s.journal.ListRecentSatisfaction(ctx, s.userID, 2)
	if err != nil {
		return domain.SatisfactionSummary{}, fmt.Errorf("failed to list satisfaction logs: %w", err)
	}

	var summary domain.SatisfactionSummary
	if len(recent) >= 1 {
		summary.CurrentScore = &recent[0].Score
	}
	if len(recent) >= 2 {
		change := recent[0].Score - recent[1].Score
		summary.Change = &change
	}
	return summary, nil
}

// AddStandup records a standup log. At least one completed or planned
// item is required; blockers alone are not a standup.
func (s *JournalService) AddStandup(ctx context.Context, completed, planned, blockers []string, notes string) (domain.StandupLog, error) {
	if len(completed) == 0 && len(planned) == 0 {
		return domain.StandupLog{}, fmt.Errorf("%w: a standup needs at least one completed or planned item", domain.ErrValidation)
	}

	log := domain.StandupLog{
		Blockers:  blockers,
		Completed: completed,
		Date:      time.Now().UTC(),
		ID:        uuid.New().String(),
		Notes:     notes,
		Planned:   planned,
		UserID:    s.userID,
	}
	if err := s.journal.AddStandup(ctx, log); err != nil {
		return domain.StandupLog{}, fmt.Errorf("failed to add standup log: %w", err)
	}

	logging.Logger.Info("Standup logged", "id", log.ID)
	return log, nil
}

// RecentStandups returns the newest standup logs.
func (s *JournalService) RecentStandups(ctx context.Context, limit int) ([]domain.StandupLog, error) {
	return s.journal.ListRecentStandups(ctx, s.userID, limit)
}

// DeleteAll wipes the user's journal. Used by the danger-zone reset.
func (s *JournalService) DeleteAll(ctx context.Context) (int64, int64, error) {
	satisfaction, err := s.journal.DeleteAllSatisfaction(ctx, s.userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete satisfaction logs: %w", err)
	}
	standups, err := s.journal.DeleteAllStandups(ctx, s.userID)
	if err != nil {
		return satisfaction, 0, fmt.Errorf("failed to delete standup logs: %w", err)
	}

	logging.Logger.Info("Journal deleted", "satisfaction_logs", satisfaction, "standup_logs", standups)
	return satisfaction, standups, nil
}

// WatchRecentSatisfaction exposes the live satisfaction feed.
func (s *JournalService) WatchRecentSatisfaction(ctx context.Context, limit int) (<-chan []domain.SatisfactionLog, func(), error) {
	return s.journal.WatchRecentSatisfaction(ctx, s.userID, limit)
}
