package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuotationRepository handles database operations for quotations
type QuotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new QuotationRepository
func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// QuotationFilter narrows List results
type QuotationFilter struct {
	Status   *domain.QuotationStatus
	ClientID *uuid.UUID
	LeadID   *uuid.UUID
}

// Create inserts a quotation together with its items
func (r *QuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	if err := r.db.WithContext(ctx).Create(quotation).Error; err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}
	return nil
}

// GetByID retrieves a quotation with items, client and lead
func (r *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Client").
		Preload("Lead").
		Preload("Lead.Company").
		First(&quotation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// List returns quotations matching the filter, newest first
func (r *QuotationRepository) List(ctx context.Context, page, pageSize int, filter *QuotationFilter) ([]domain.Quotation, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Quotation{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.ClientID != nil {
			query = query.Where("client_id = ?", *filter.ClientID)
		}
		if filter.LeadID != nil {
			query = query.Where("lead_id = ?", *filter.LeadID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quotations: %w", err)
	}

	var quotations []domain.Quotation
	err := query.
		Preload("Items").
		Preload("Client").
		Preload("Lead").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&quotations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotations: %w", err)
	}

	return quotations, total, nil
}

// Update saves quotation changes (items are not touched)
func (r *QuotationRepository) Update(ctx context.Context, quotation *domain.Quotation) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(quotation).Error; err != nil {
		return fmt.Errorf("failed to update quotation: %w", err)
	}
	return nil
}

// OpenTotals returns the count and summed total of Draft and Sent quotations
func (r *QuotationRepository) OpenTotals(ctx context.Context) (int64, float64, error) {
	type row struct {
		Count int64
		Sum   float64
	}
	var res row
	err := r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Select("count(*) as count, coalesce(sum(total), 0) as sum").
		Where("status IN ?", []domain.QuotationStatus{domain.QuotationStatusDraft, domain.QuotationStatusSent}).
		Scan(&res).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate open quotations: %w", err)
	}
	return res.Count, res.Sum, nil
}
