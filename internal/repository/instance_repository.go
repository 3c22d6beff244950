package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"home-organizer/internal/model"
)

// InstanceRepository handles per-date status overrides.
type InstanceRepository struct {
	db *gorm.DB
}

func NewInstanceRepository(db *gorm.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

// ListInRange returns overrides with start <= date <= end. Dates are ISO
// strings, so BETWEEN compares correctly.
func (r *InstanceRepository) ListInRange(ctx context.Context, start, end string) ([]model.Instance, error) {
	var instances []model.Instance
	if err := r.db.WithContext(ctx).Where("date BETWEEN ? AND ?", start, end).Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *InstanceRepository) FindByTaskAndDate(ctx context.Context, taskID uint, date string) (*model.Instance, error) {
	var instance model.Instance
	if err := r.db.WithContext(ctx).Where("task_id = ? AND date = ?", taskID, date).First(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// Upsert inserts or updates the override for (taskID, date). An empty
// status keeps the stored one (or open), nil notes keep the stored notes.
// The completion timestamp is set only while the effective status is
// done, and cleared otherwise.
func (r *InstanceRepository) Upsert(ctx context.Context, taskID uint, date, status string, notes *string) (*model.Instance, error) {
	db := r.db.WithContext(ctx)

	var instance model.Instance
	err := db.Where("task_id = ? AND date = ?", taskID, date).First(&instance).Error
	switch {
	case err == nil:
		if status != "" {
			instance.Status = status
		}
		if notes != nil {
			instance.Notes = *notes
		}
	case err == gorm.ErrRecordNotFound:
		instance = model.Instance{TaskID: taskID, Date: date, Status: status}
		if instance.Status == "" {
			instance.Status = model.StatusOpen
		}
		if notes != nil {
			instance.Notes = *notes
		}
	default:
		return nil, fmt.Errorf("find instance: %w", err)
	}

	if instance.Status == model.StatusDone {
		now := time.Now()
		instance.CompletedAt = &now
	} else {
		instance.CompletedAt = nil
	}

	if err := db.Save(&instance).Error; err != nil {
		return nil, fmt.Errorf("save instance: %w", err)
	}
	return &instance, nil
}
