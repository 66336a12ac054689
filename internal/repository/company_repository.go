package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a new company
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByName retrieves a company by exact name
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.WithContext(ctx).First(&company, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns companies, optionally filtered by a name search
func (r *CompanyRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Company, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Company{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	var companies []domain.Company
	err := query.
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&companies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, total, nil
}

// Update saves company changes
func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	if err := r.db.WithContext(ctx).Save(company).Error; err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}
