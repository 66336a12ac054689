package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyService manages the company directory that leads attach to
type CompanyService struct {
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Create inserts a new company. Company names are unique.
func (s *CompanyService) Create(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.Company, error) {
	existing, err := s.companyRepo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking company name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: company %q already exists", ErrConflict, req.Name)
	}

	company := &domain.Company{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		Industry:      req.Industry,
		ContactPerson: req.ContactPerson,
		IsActive:      true,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("name", company.Name))
	return company, nil
}

// GetByID returns a single company
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: company %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}
	return company, nil
}

// List returns a paginated company directory, optionally filtered by name search
func (s *CompanyService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	companies, total, err := s.companyRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}

	return &domain.PaginatedResponse{
		Data:       companies,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}
