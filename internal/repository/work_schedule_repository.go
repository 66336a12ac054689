package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// WorkScheduleRepository handles the attendance policy settings row
type WorkScheduleRepository struct {
	db *gorm.DB
}

// NewWorkScheduleRepository creates a new WorkScheduleRepository
func NewWorkScheduleRepository(db *gorm.DB) *WorkScheduleRepository {
	return &WorkScheduleRepository{db: db}
}

// Get returns the work schedule, creating the default row if none exists
func (r *WorkScheduleRepository) Get(ctx context.Context) (*domain.WorkSchedule, error) {
	var schedule domain.WorkSchedule
	err := r.db.WithContext(ctx).First(&schedule).Error
	if err == gorm.ErrRecordNotFound {
		schedule = domain.WorkSchedule{
			WorkStart:        "08:00",
			LateThresholdMin: 15,
			AllowRemoteLogin: false,
		}
		if err := r.db.WithContext(ctx).Create(&schedule).Error; err != nil {
			return nil, fmt.Errorf("failed to create default work schedule: %w", err)
		}
		return &schedule, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work schedule: %w", err)
	}
	return &schedule, nil
}

// Update saves work schedule changes
func (r *WorkScheduleRepository) Update(ctx context.Context, schedule *domain.WorkSchedule) error {
	if err := r.db.WithContext(ctx).Save(schedule).Error; err != nil {
		return fmt.Errorf("failed to update work schedule: %w", err)
	}
	return nil
}
