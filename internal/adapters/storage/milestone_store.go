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

// MilestoneStore implements ports.MilestoneRepository using GORM
type MilestoneStore struct {
	store *Store
}

// Verify interface compliance at compile time
var _ ports.MilestoneRepository = (*MilestoneStore)(nil)

// Get implements MilestoneReader.Get
func (r *MilestoneStore) Get(ctx context.Context, id string) (*domain.Milestone, error) {
	var model MilestoneModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMilestoneNotFound, id)
		}
		return nil, err
	}

	milestone := milestoneModelToDomain(model)
	return &milestone, nil
}

// ListByStatus implements MilestoneReader.ListByStatus
func (r *MilestoneStore) ListByStatus(ctx context.Context, status domain.MilestoneStatus) ([]domain.Milestone, error) {
	var models []MilestoneModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("status = ?", string(status)).
			Order("end_date ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return milestonesToDomain(models), nil
}

// ListUpcoming implements MilestoneReader.ListUpcoming: active
// milestones ending on or after the given instant, soonest first.
func (r *MilestoneStore) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]domain.Milestone, error) {
	var models []MilestoneModel

	err := withRetry(func() error {
		q := r.store.db.WithContext(ctx).
			Where("status = ? AND end_date >= ?", string(domain.StatusActive), after).
			Order("end_date ASC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return milestonesToDomain(models), nil
}

// ListEndingBetween implements MilestoneReader.ListEndingBetween
func (r *MilestoneStore) ListEndingBetween(ctx context.Context, start, end time.Time) ([]domain.Milestone, error) {
	var models []MilestoneModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("end_date >= ? AND end_date <= ?", start, end).
			Order("end_date ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return milestonesToDomain(models), nil
}

// CountByStatus implements MilestoneReader.CountByStatus
func (r *MilestoneStore) CountByStatus(ctx context.Context, status domain.MilestoneStatus) (int64, error) {
	var count int64

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).Model(&MilestoneModel{}).
			Where("status = ?", string(status)).
			Count(&count).Error
	}, 3)

	return count, err
}

// Add implements MilestoneWriter.Add
func (r *MilestoneStore) Add(ctx context.Context, milestone domain.Milestone) error {
	err := withRetry(func() error {
		model := domainToMilestoneModel(milestone)
		return r.store.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to create milestone: %w", err)
	}

	r.store.notifier.broadcast(colMilestones)
	return nil
}

// Update implements MilestoneWriter.Update
func (r *MilestoneStore) Update(ctx context.Context, id string, update domain.MilestoneUpdate) error {
	updates := map[string]any{}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.EndDate != nil {
		updates["end_date"] = *update.EndDate
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.Urgency != nil {
		updates["urgency"] = string(*update.Urgency)
	}
	if len(updates) == 0 {
		return nil
	}

	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Model(&MilestoneModel{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrMilestoneNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colMilestones)
	return nil
}

// SetProgress implements MilestoneWriter.SetProgress: the progress
// engine's single write of derived progress and status.
func (r *MilestoneStore) SetProgress(ctx context.Context, id string, progress int, status domain.MilestoneStatus) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Model(&MilestoneModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"progress": progress,
				"status":   string(status),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrMilestoneNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colMilestones)
	return nil
}

// Delete implements MilestoneWriter.Delete
func (r *MilestoneStore) Delete(ctx context.Context, id string) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Where("id = ?", id).Delete(&MilestoneModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrMilestoneNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colMilestones)
	return nil
}

// DeleteAll implements MilestoneWriter.DeleteAll. Returns the ids of
// the removed milestones so the caller can cascade task deletion.
func (r *MilestoneStore) DeleteAll(ctx context.Context) ([]string, error) {
	var ids []string

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&MilestoneModel{}).Pluck("id", &ids).Error; err != nil {
				return err
			}
			if len(ids) == 0 {
				return nil
			}
			return tx.Where("1 = 1").Delete(&MilestoneModel{}).Error
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		r.store.notifier.broadcast(colMilestones)
	}
	return ids, nil
}

// WatchByStatus implements MilestoneWatcher.WatchByStatus
func (r *MilestoneStore) WatchByStatus(ctx context.Context, status domain.MilestoneStatus) (<-chan []domain.Milestone, func(), error) {
	return watchQuery(ctx, r.store.notifier, colMilestones, func(ctx context.Context) ([]domain.Milestone, error) {
		return r.ListByStatus(ctx, status)
	})
}

func milestonesToDomain(models []MilestoneModel) []domain.Milestone {
	result := make([]domain.Milestone, len(models))
	for i, m := range models {
		result[i] = milestoneModelToDomain(m)
	}
	return result
}
