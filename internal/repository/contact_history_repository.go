package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactHistoryRepository handles database operations for contact history.
// History rows are append-only.
type ContactHistoryRepository struct {
	db *gorm.DB
}

// NewContactHistoryRepository creates a new ContactHistoryRepository
func NewContactHistoryRepository(db *gorm.DB) *ContactHistoryRepository {
	return &ContactHistoryRepository{db: db}
}

// Create appends a contact history row
func (r *ContactHistoryRepository) Create(ctx context.Context, entry *domain.ContactHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create contact history: %w", err)
	}
	return nil
}

// ListByLead returns contact history rows for a lead, newest first
func (r *ContactHistoryRepository) ListByLead(ctx context.Context, leadID uuid.UUID, limit int) ([]domain.ContactHistory, error) {
	var entries []domain.ContactHistory
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("contacted_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact history: %w", err)
	}
	return entries, nil
}

// ListByClient returns contact history rows for a client, newest first
func (r *ContactHistoryRepository) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.ContactHistory, error) {
	var entries []domain.ContactHistory
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("contacted_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact history: %w", err)
	}
	return entries, nil
}
