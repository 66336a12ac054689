package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InquiryRepository handles database operations for inquiries
type InquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new InquiryRepository
func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// InquiryFilter narrows List results
type InquiryFilter struct {
	Status *domain.InquiryStatus
	LeadID *uuid.UUID
	Search string
}

// Create inserts a new inquiry
func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// GetByID retrieves an inquiry with its related lead
func (r *InquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.WithContext(ctx).
		Preload("RelatedLead").
		Preload("RelatedLead.Company").
		First(&inquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// List returns inquiries matching the filter, newest first
func (r *InquiryRepository) List(ctx context.Context, page, pageSize int, filter *InquiryFilter) ([]domain.Inquiry, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Inquiry{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.LeadID != nil {
			query = query.Where("related_lead_id = ?", *filter.LeadID)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("customer_name ILIKE ? OR company_name ILIKE ? OR product_type ILIKE ?", pattern, pattern, pattern)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	var inquiries []domain.Inquiry
	err := query.
		Preload("RelatedLead").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&inquiries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}

	return inquiries, total, nil
}

// Update saves inquiry changes
func (r *InquiryRepository) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	if err := r.db.WithContext(ctx).Save(inquiry).Error; err != nil {
		return fmt.Errorf("failed to update inquiry: %w", err)
	}
	return nil
}

// Delete removes an inquiry
func (r *InquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Inquiry{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus returns inquiry counts grouped by status
func (r *InquiryRepository) CountByStatus(ctx context.Context) (map[domain.InquiryStatus]int64, error) {
	type row struct {
		Status domain.InquiryStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count inquiries by status: %w", err)
	}

	counts := make(map[domain.InquiryStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
