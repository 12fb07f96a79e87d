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

// TaskStore implements ports.TaskRepository using GORM
type TaskStore struct {
	store *Store
}

// Verify interface compliance at compile time
var _ ports.TaskRepository = (*TaskStore)(nil)

// Get implements TaskReader.Get
func (r *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	var model TaskModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil, err
	}

	task := taskModelToDomain(model)
	return &task, nil
}

// ListRecent implements TaskReader.ListRecent
func (r *TaskStore) ListRecent(ctx context.Context, limit int) ([]domain.Task, error) {
	var models []TaskModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Order("created_at DESC").
			Limit(limit).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return tasksToDomain(models), nil
}

// ListByDateRange implements TaskReader.ListByDateRange
func (r *TaskStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	var models []TaskModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("date >= ? AND date <= ?", start, end).
			Order("date ASC, created_at ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return tasksToDomain(models), nil
}

// ListForMilestone implements TaskReader.ListForMilestone
func (r *TaskStore) ListForMilestone(ctx context.Context, milestoneID string) ([]domain.Task, error) {
	var models []TaskModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Where("milestone_id = ?", milestoneID).
			Order("created_at ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return tasksToDomain(models), nil
}

// ListAll implements TaskReader.ListAll
func (r *TaskStore) ListAll(ctx context.Context) ([]domain.Task, error) {
	var models []TaskModel

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).
			Order("created_at DESC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return tasksToDomain(models), nil
}

// CountForMilestone implements TaskCounter.CountForMilestone
func (r *TaskStore) CountForMilestone(ctx context.Context, milestoneID string) (domain.TaskCounts, error) {
	var counts domain.TaskCounts

	err := withRetry(func() error {
		if err := r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("milestone_id = ?", milestoneID).
			Count(&counts.Total).Error; err != nil {
			return err
		}
		return r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("milestone_id = ? AND completed = ?", milestoneID, true).
			Count(&counts.Completed).Error
	}, 3)

	return counts, err
}

// CountForDateRange implements TaskCounter.CountForDateRange
func (r *TaskStore) CountForDateRange(ctx context.Context, start, end time.Time) (domain.TaskCounts, error) {
	var counts domain.TaskCounts

	err := withRetry(func() error {
		if err := r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("date >= ? AND date <= ?", start, end).
			Count(&counts.Total).Error; err != nil {
			return err
		}
		return r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("date >= ? AND date <= ? AND completed = ?", start, end, true).
			Count(&counts.Completed).Error
	}, 3)

	return counts, err
}

// Add implements TaskWriter.Add
func (r *TaskStore) Add(ctx context.Context, task domain.Task) error {
	err := withRetry(func() error {
		model := domainToTaskModel(task)
		return r.store.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	r.store.notifier.broadcast(colTasks)
	return nil
}

// Update implements TaskWriter.Update
func (r *TaskStore) Update(ctx context.Context, id string, update domain.TaskUpdate) error {
	updates := map[string]any{}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.Priority != nil {
		updates["priority"] = string(*update.Priority)
	}
	if update.Urgency != nil {
		updates["urgency"] = string(*update.Urgency)
	}
	if update.Tags != nil {
		updates["tags"] = encodeStrings(*update.Tags)
	}
	if len(updates) == 0 {
		return nil
	}

	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTasks)
	return nil
}

// UpdateMilestone implements TaskWriter.UpdateMilestone. An empty
// milestoneID unlinks the task; it lands as NULL so the column has a
// single representation of "unlinked".
func (r *TaskStore) UpdateMilestone(ctx context.Context, id, milestoneID string) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("id = ?", id).
			Update("milestone_id", strPtr(milestoneID))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTasks)
	return nil
}

// UpdateCompletion implements TaskWriter.UpdateCompletion
func (r *TaskStore) UpdateCompletion(ctx context.Context, id string, completed bool) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("id = ?", id).
			Update("completed", completed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTasks)
	return nil
}

// UpdateQuadrant implements TaskWriter.UpdateQuadrant
func (r *TaskStore) UpdateQuadrant(ctx context.Context, id string, priority domain.Priority, urgency domain.Urgency) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Model(&TaskModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"priority": string(priority),
				"urgency":  string(urgency),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTasks)
	return nil
}

// UpdateQuadrantBulk implements TaskWriter.UpdateQuadrantBulk. The
// update runs in a single transaction so a partial move never lands.
func (r *TaskStore) UpdateQuadrantBulk(ctx context.Context, ids []string, priority domain.Priority, urgency domain.Urgency) error {
	if len(ids) == 0 {
		return nil
	}

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Model(&TaskModel{}).
				Where("id IN ?", ids).
				Updates(map[string]any{
					"priority": string(priority),
					"urgency":  string(urgency),
				}).Error
		})
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTasks)
	return nil
}

// Delete implements TaskWriter.Delete
func (r *TaskStore) Delete(ctx context.Context, id string) error {
	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Where("id = ?", id).Delete(&TaskModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil
	}, 3)
	if err != nil {
		return err
	}

	r.store.notifier.broadcast(colTasks)
	return nil
}

// DeleteForMilestone implements TaskWriter.DeleteForMilestone. The
// delete is a single atomic batch; it either removes every linked task
// or none of them.
func (r *TaskStore) DeleteForMilestone(ctx context.Context, milestoneID string) (int64, error) {
	var deleted int64

	err := withRetry(func() error {
		return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Where("milestone_id = ?", milestoneID).Delete(&TaskModel{})
			if result.Error != nil {
				return result.Error
			}
			deleted = result.RowsAffected
			return nil
		})
	}, 3)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		r.store.notifier.broadcast(colTasks)
	}
	return deleted, nil
}

// DeleteAll implements TaskWriter.DeleteAll
func (r *TaskStore) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64

	err := withRetry(func() error {
		result := r.store.db.WithContext(ctx).Where("1 = 1").Delete(&TaskModel{})
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
		r.store.notifier.broadcast(colTasks)
	}
	return deleted, nil
}

// WatchRecent implements TaskWatcher.WatchRecent
func (r *TaskStore) WatchRecent(ctx context.Context, limit int) (<-chan []domain.Task, func(), error) {
	return watchQuery(ctx, r.store.notifier, colTasks, func(ctx context.Context) ([]domain.Task, error) {
		return r.ListRecent(ctx, limit)
	})
}

// WatchByDateRange implements TaskWatcher.WatchByDateRange
func (r *TaskStore) WatchByDateRange(ctx context.Context, start, end time.Time) (<-chan []domain.Task, func(), error) {
	return watchQuery(ctx, r.store.notifier, colTasks, func(ctx context.Context) ([]domain.Task, error) {
		return r.ListByDateRange(ctx, start, end)
	})
}

// WatchAll implements TaskWatcher.WatchAll
func (r *TaskStore) WatchAll(ctx context.Context) (<-chan []domain.Task, func(), error) {
	return watchQuery(ctx, r.store.notifier, colTasks, r.ListAll)
}

func tasksToDomain(models []TaskModel) []domain.Task {
	result := make([]domain.Task, len(models))
	for i, m := range models {
		result[i] = taskModelToDomain(m)
	}
	return result
}
