package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pulse/internal/domain"
	"pulse/internal/ports"
)

// JournalStore implements ports.JournalRepository using GORM
type JournalStore struct {
	store *Store
}

// Verify interface compliance at compile time
var _ ports.JournalRepository = (*JournalStore)(nil)

// ListRecentSatisfaction implements SatisfactionReader.ListRecentSatisfaction
func (r *JournalStore) ListRecentSatisfaction(ctx context.Context, userID string, limit int) ([]domain.SatisfactionLog, error) {
	var models []SatisfactionLogModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("date DESC").
			Limit(limit).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return satisfactionToDomain(models), nil
}

// ListSatisfactionBetween implements SatisfactionReader.ListSatisfactionBetween.
// The end bound is exclusive so month queries can pass the first instant
// of the following month.
func (r *JournalStore) ListSatisfactionBetween(ctx context.Context, userID string, start, end time.Time) ([]domain.SatisfactionLog, error) {
	var models []SatisfactionLogModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
			Order("date ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return satisfactionToDomain(models), nil
}

// FindSatisfactionForDay implements SatisfactionReader.FindSatisfactionForDay.
// Returns nil without error when no entry exists on that calendar day.
func (r *JournalStore) FindSatisfactionForDay(ctx context.Context, userID string, day time.Time) (*domain.SatisfactionLog, error) {
	var model SatisfactionLogModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("user_id = ? AND date >= ? AND date <= ?",
				userID, domain.StartOfDay(day), domain.EndOfDay(day)).
			First(&model).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	log := satisfactionModelToDomain(model)
	return &log, nil
}

// AddSatisfaction implements SatisfactionWriter.AddSatisfaction
func (r *JournalStore) AddSatisfaction(ctx context.Context, log domain.SatisfactionLog) error {
	err := withRetry(func() error {
		model := domainToSatisfactionModel(log)
		return r.store.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to create satisfaction log: %w", err)
	}

	r.store.notifier.broadcast(colJournal)
	return nil
}

// SaveSatisfaction implements SatisfactionWriter.SaveSatisfaction
func (r *JournalStore) SaveSatisfaction(ctx context.Context, log domain.SatisfactionLog) error {
	err := withRetry(func() error {
		model := domainToSatisfactionModel(log)
		return r.store.db.WithContext(ctx).Save(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to save satisfaction log: %w", err)
	}

	r.store.notifier.broadcast(colJournal)
	return nil
}

// DeleteAllSatisfaction implements SatisfactionWriter.DeleteAllSatisfaction
func (r *JournalStore) DeleteAllSatisfaction(ctx context.Context, userID string) (int64, error) {
	var deleted int64

	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Delete(&SatisfactionLogModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	}, 3)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		r.store.notifier.broadcast(colJournal)
	}
	return deleted, nil
}

// ListRecentStandups implements StandupReader.ListRecentStandups
func (r *JournalStore) ListRecentStandups(ctx context.Context, userID string, limit int) ([]domain.StandupLog, error) {
	var models []StandupLogModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("date DESC").
			Limit(limit).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	result := make([]domain.StandupLog, len(models))
	for i, m := range models {
		result[i] = standupModelToDomain(m)
	}
	return result, nil
}

// AddStandup implements StandupWriter.AddStandup
func (r *JournalStore) AddStandup(ctx context.Context, log domain.StandupLog) error {
	err := withRetry(func() error {
		model := domainToStandupModel(log)
		return r.store.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to create standup log: %w", err)
	}

	r.store.notifier.broadcast(colJournal)
	return nil
}

// DeleteAllStandups implements StandupWriter.DeleteAllStandups
func (r *JournalStore) DeleteAllStandups(ctx context.Context, userID string) (int64, error) {
	var deleted int64

	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Delete(&StandupLogModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	}, 3)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		r.store.notifier.broadcast(colJournal)
	}
	return deleted, nil
}

// WatchRecentSatisfaction implements JournalWatcher.WatchRecentSatisfaction
func (r *JournalStore) WatchRecentSatisfaction(ctx context.Context, userID string, limit int) (<-chan []domain.SatisfactionLog, func(), error) {
	return watchQuery(ctx, r.store.notifier, colJournal, func(ctx context.Context) ([]domain.SatisfactionLog, error) {
		return r.ListRecentSatisfaction(ctx, userID, limit)
	})
}

func satisfactionToDomain(models []SatisfactionLogModel) []domain.SatisfactionLog {
	result := make([]domain.SatisfactionLog, len(models))
	for i, m := range models {
		result[i] = satisfactionModelToDomain(m)
	}
	return result
}
