package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeadService implements lead pipeline management
type LeadService struct {
	db          *gorm.DB
	leadRepo    *repository.LeadRepository
	companyRepo *repository.CompanyRepository
	historyRepo *repository.ContactHistoryRepository
	logRepo     *repository.ActivityLogRepository
	logger      *zap.Logger
}

// NewLeadService creates a new LeadService
func NewLeadService(
	db *gorm.DB,
	leadRepo *repository.LeadRepository,
	companyRepo *repository.CompanyRepository,
	historyRepo *repository.ContactHistoryRepository,
	logRepo *repository.ActivityLogRepository,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		db:          db,
		leadRepo:    leadRepo,
		companyRepo: companyRepo,
		historyRepo: historyRepo,
		logRepo:     logRepo,
		logger:      logger,
	}
}

// Create inserts a new lead, resolving or creating its company
func (s *LeadService) Create(ctx context.Context, req *domain.CreateLeadRequest) (*domain.Lead, error) {
	var companyID uuid.UUID

	switch {
	case req.CompanyID != nil:
		company, err := s.companyRepo.GetByID(ctx, *req.CompanyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: company", ErrNotFound)
			}
			return nil, err
		}
		companyID = company.ID
	case req.CompanyName != "":
		company, err := s.companyRepo.GetByName(ctx, req.CompanyName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			company = &domain.Company{Name: req.CompanyName, IsActive: true}
			if err := s.companyRepo.Create(ctx, company); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		companyID = company.ID
	default:
		return nil, fmt.Errorf("%w: companyId or companyName is required", ErrInvalidInput)
	}

	lead := &domain.Lead{
		CompanyID:      companyID,
		ContactPerson:  req.ContactPerson,
		Email:          req.Email,
		Phone:          req.Phone,
		Status:         domain.LeadStatusNew,
		Source:         req.Source,
		AssignedToID:   req.AssignedToID,
		EstimatedValue: req.EstimatedValue,
		FollowUpDate:   req.FollowUpDate,
		Notes:          req.Notes,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	return s.leadRepo.GetByID(ctx, lead.ID)
}

// GetByID retrieves a lead
func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

// List returns a page of leads
func (s *LeadService) List(ctx context.Context, page, pageSize int, filter *repository.LeadFilter) (*domain.PaginatedResponse, error) {
	leads, total, err := s.leadRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       leads,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Update applies partial changes to a lead
func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLeadRequest) (*domain.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ContactPerson != nil {
		lead.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.AssignedToID != nil {
		lead.AssignedToID = req.AssignedToID
	}
	if req.EstimatedValue != nil {
		lead.EstimatedValue = *req.EstimatedValue
	}
	if req.FollowUpDate != nil {
		lead.FollowUpDate = req.FollowUpDate
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return s.leadRepo.GetByID(ctx, lead.ID)
}

// UpdateStatus moves a lead to a new pipeline stage manually and records
// the change in the activity log. Setting the current status is a no-op.
func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus domain.LeadStatus, note string, actorID *uuid.UUID) (*domain.Lead, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: invalid lead status %q", ErrInvalidInput, newStatus)
	}

	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Status == newStatus {
		return lead, nil
	}

	oldStatus := lead.Status

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Lead{}).Where("id = ?", lead.ID).Updates(map[string]interface{}{
			"status":            newStatus,
			"last_contact_date": time.Now(),
		}).Error; err != nil {
			return fmt.Errorf("failed to update lead status: %w", err)
		}

		entry := domain.ActivityLog{
			LeadID:      &lead.ID,
			Action:      "STATUS_CHANGE",
			OldStatus:   string(oldStatus),
			NewStatus:   string(newStatus),
			CreatedByID: actorID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create activity log: %w", err)
		}

		if note != "" {
			history := domain.ContactHistory{
				LeadID:      &lead.ID,
				Method:      "Note",
				Summary:     note,
				ContactedAt: time.Now(),
				CreatedByID: actorID,
			}
			if err := tx.Create(&history).Error; err != nil {
				return fmt.Errorf("failed to create contact history: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lead status changed",
		zap.String("lead_id", lead.ID.String()),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(newStatus)),
	)

	return s.leadRepo.GetByID(ctx, lead.ID)
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.leadRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AddContactHistory appends a manual contact note to a lead
func (s *LeadService) AddContactHistory(ctx context.Context, leadID uuid.UUID, req *domain.CreateContactHistoryRequest, actorID *uuid.UUID) (*domain.ContactHistory, error) {
	if _, err := s.GetByID(ctx, leadID); err != nil {
		return nil, err
	}

	entry := &domain.ContactHistory{
		LeadID:      &leadID,
		Method:      req.Method,
		Summary:     req.Summary,
		Outcome:     req.Outcome,
		ContactedAt: time.Now(),
		CreatedByID: actorID,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ContactHistory returns the contact trail for a lead, newest first
func (s *LeadService) ContactHistory(ctx context.Context, leadID uuid.UUID, limit int) ([]domain.ContactHistory, error) {
	if _, err := s.GetByID(ctx, leadID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.historyRepo.ListByLead(ctx, leadID, limit)
}

// ActivityLog returns the audit trail for a lead, newest first
func (s *LeadService) ActivityLog(ctx context.Context, leadID uuid.UUID, limit int) ([]domain.ActivityLog, error) {
	if _, err := s.GetByID(ctx, leadID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.logRepo.ListByLead(ctx, leadID, limit)
}
