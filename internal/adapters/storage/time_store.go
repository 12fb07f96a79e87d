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

// TimeEntryStore implements ports.TimeEntryRepository using GORM
type TimeEntryStore struct {
	store *Store
}

// Verify interface compliance at compile time
var _ ports.TimeEntryRepository = (*TimeEntryStore)(nil)

// Get implements TimeEntryReader.Get
func (r *TimeEntryStore) Get(ctx context.Context, id string) (*domain.TimeEntry, error) {
	var model TimeEntryModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		return nil, err
	}

	entry := entryModelToDomain(model)
	return &entry, nil
}

// Running implements TimeEntryReader.Running. Returns nil without error
// when no timer is running.
func (r *TimeEntryStore) Running(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	var model TimeEntryModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("user_id = ? AND ended_at IS NULL", userID).
			First(&model).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entry := entryModelToDomain(model)
	return &entry, nil
}

// ListByDayRange implements TimeEntryReader.ListByDayRange
func (r *TimeEntryStore) ListByDayRange(ctx context.Context, userID, startDay, endDay string) ([]domain.TimeEntry, error) {
	var models []TimeEntryModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("user_id = ? AND day >= ? AND day <= ?", userID, startDay, endDay).
			Order("day ASC, started_at ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TimeEntry, len(models))
	for i, m := range models {
		result[i] = entryModelToDomain(m)
	}
	return result, nil
}

// Add implements TimeEntryWriter.Add
func (r *TimeEntryStore) Add(ctx context.Context, entry domain.TimeEntry) error {
	err := withRetry(func() error {
		model := domainToEntryModel(entry)
		return r.store.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}

	r.store.notifier.broadcast(colTimeEntries)
	return nil
}

// Save implements TimeEntryWriter.Save: full-document upsert used by
// entry edits after the service has rederived duration and day.
func (r *TimeEntryStore) Save(ctx context.Context, entry domain.TimeEntry) error {
	err := withRetry(func() error {
		model := domainToEntryModel(entry)
		return r.store.db.WithContext(ctx).Save(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to save time entry: %w", err)
	}

	r.store.notifier.broadcast(colTimeEntries)
	return nil
}

// Stop implements TimeEntryWriter.Stop
func (r *TimeEntryStore) Stop(ctx context.Context, id string, endedAt time.Time, durationSec int64) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Model(&TimeEntryModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"ended_at":     endedAt,
				"duration_sec": durationSec,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTimeEntries)
	return nil
}

// Delete implements TimeEntryWriter.Delete
func (r *TimeEntryStore) Delete(ctx context.Context, id string) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Where("id = ?", id).Delete(&TimeEntryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTimeEntries)
	return nil
}

// WatchRunning implements TimerWatcher.WatchRunning
func (r *TimeEntryStore) WatchRunning(ctx context.Context, userID string) (<-chan *domain.TimeEntry, func(), error) {
	return watchQuery(ctx, r.store.notifier, colTimeEntries, func(ctx context.Context) (*domain.TimeEntry, error) {
		return r.Running(ctx, userID)
	})
}

// WatchByDayRange implements TimerWatcher.WatchByDayRange
func (r *TimeEntryStore) WatchByDayRange(ctx context.Context, userID, startDay, endDay string) (<-chan []domain.TimeEntry, func(), error) {
	return watchQuery(ctx, r.store.notifier, colTimeEntries, func(ctx context.Context) ([]domain.TimeEntry, error) {
		return r.ListByDayRange(ctx, userID, startDay, endDay)
	})
}
