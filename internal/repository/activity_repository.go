package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLogRepository handles database operations for the activity log.
// The log is append-only; there are no update or delete methods.
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create appends an activity log row
func (r *ActivityLogRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create activity log: %w", err)
	}
	return nil
}

// ListByLead returns activity log rows for a lead, newest first
func (r *ActivityLogRepository) ListByLead(ctx context.Context, leadID uuid.UUID, limit int) ([]domain.ActivityLog, error) {
	var entries []domain.ActivityLog
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}
	return entries, nil
}

// CountByLead returns the number of activity rows for a lead
func (r *ActivityLogRepository) CountByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ActivityLog{}).
		Where("lead_id = ?", leadID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count activity log: %w", err)
	}
	return count, nil
}
