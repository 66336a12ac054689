package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadRepository handles database operations for leads
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// LeadFilter narrows List results
type LeadFilter struct {
	Status       *domain.LeadStatus
	AssignedToID *uuid.UUID
	Search       string
}

// Create inserts a new lead
func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// GetByID retrieves a lead with its company and assignee
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("AssignedTo").
		First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns leads matching the filter, newest first
func (r *LeadRepository) List(ctx context.Context, page, pageSize int, filter *LeadFilter) ([]domain.Lead, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Lead{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.AssignedToID != nil {
			query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("contact_person ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	var leads []domain.Lead
	err := query.
		Preload("Company").
		Preload("AssignedTo").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&leads).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}

	return leads, total, nil
}

// Update saves lead changes
func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	if err := r.db.WithContext(ctx).Save(lead).Error; err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return nil
}

// Delete removes a lead
func (r *LeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Lead{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lead: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByContact looks up the most recent lead matching an email or phone.
// Empty arguments are ignored; both empty returns not-found.
func (r *LeadRepository) FindByContact(ctx context.Context, email, phone string) (*domain.Lead, error) {
	query := r.db.WithContext(ctx).Preload("Company")

	switch {
	case email != "" && phone != "":
		query = query.Where("email = ? OR phone = ?", email, phone)
	case email != "":
		query = query.Where("email = ?", email)
	case phone != "":
		query = query.Where("phone = ?", phone)
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var lead domain.Lead
	if err := query.Order("created_at DESC").First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// CountByStatus returns lead counts grouped by status
func (r *LeadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	type row struct {
		Status domain.LeadStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count leads by status: %w", err)
	}

	counts := make(map[domain.LeadStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
