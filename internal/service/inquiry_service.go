package service

import (
	"context"
	"encoding/json"
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

// InquiryService implements the inquiry intake and lifecycle.
// Inquiry transitions that touch a linked lead write the inquiry, the
// lead, one activity log row and one contact history row in a single
// transaction so the audit trail can never drift from the data.
type InquiryService struct {
	db          *gorm.DB
	inquiryRepo *repository.InquiryRepository
	leadRepo    *repository.LeadRepository
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(
	db *gorm.DB,
	inquiryRepo *repository.InquiryRepository,
	leadRepo *repository.LeadRepository,
	companyRepo *repository.CompanyRepository,
	logger *zap.Logger,
) *InquiryService {
	return &InquiryService{
		db:          db,
		inquiryRepo: inquiryRepo,
		leadRepo:    leadRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Create records a new inquiry. When the contact details match an
// existing lead the inquiry is linked to it automatically and one
// contact history row records the touchpoint; the lead's pipeline
// stage is not moved at intake, so no activity log entry is written.
// Inquiry and history commit in the same transaction.
func (s *InquiryService) Create(ctx context.Context, req *domain.CreateInquiryRequest, createdBy *uuid.UUID) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{
		CustomerName:    req.CustomerName,
		CompanyName:     req.CompanyName,
		Email:           req.Email,
		Phone:           req.Phone,
		IsCompany:       req.IsCompany,
		ProductType:     req.ProductType,
		Quantity:        req.Quantity,
		DeliveryMethod:  req.DeliveryMethod,
		DeliveryDate:    req.DeliveryDate,
		ReferenceSource: req.ReferenceSource,
		Status:          domain.InquiryStatusNew,
		CreatedByID:     createdBy,
		Notes:           req.Notes,
	}

	if req.Email != "" || req.Phone != "" {
		lead, err := s.leadRepo.FindByContact(ctx, req.Email, req.Phone)
		if err == nil {
			inquiry.RelatedLeadID = &lead.ID
			s.logger.Info("inquiry linked to existing lead",
				zap.String("lead_id", lead.ID.String()),
				zap.String("customer_name", req.CustomerName),
			)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("RelatedLead").Create(inquiry).Error; err != nil {
			return fmt.Errorf("failed to create inquiry: %w", err)
		}

		if inquiry.RelatedLeadID == nil {
			return nil
		}

		history := domain.ContactHistory{
			LeadID:      inquiry.RelatedLeadID,
			Method:      "Inquiry",
			Summary:     fmt.Sprintf("New inquiry received for %s", inquiry.ProductType),
			ContactedAt: time.Now(),
			CreatedByID: createdBy,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create contact history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.inquiryRepo.GetByID(ctx, inquiry.ID)
}

// GetByID retrieves an inquiry
func (s *InquiryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inquiry, nil
}

// List returns a page of inquiries
func (s *InquiryService) List(ctx context.Context, page, pageSize int, filter *repository.InquiryFilter) (*domain.PaginatedResponse, error) {
	inquiries, total, err := s.inquiryRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       inquiries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Update applies partial changes to an inquiry's intake fields
func (s *InquiryService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInquiryRequest) (*domain.Inquiry, error) {
	inquiry, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		inquiry.CustomerName = *req.CustomerName
	}
	if req.CompanyName != nil {
		inquiry.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		inquiry.Email = *req.Email
	}
	if req.Phone != nil {
		inquiry.Phone = *req.Phone
	}
	if req.ProductType != nil {
		inquiry.ProductType = *req.ProductType
	}
	if req.Quantity != nil {
		inquiry.Quantity = *req.Quantity
	}
	if req.DeliveryMethod != nil {
		inquiry.DeliveryMethod = *req.DeliveryMethod
	}
	if req.DeliveryDate != nil {
		inquiry.DeliveryDate = req.DeliveryDate
	}
	if req.Notes != nil {
		inquiry.Notes = *req.Notes
	}

	if err := s.inquiryRepo.Update(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// Delete removes an inquiry
func (s *InquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.inquiryRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Quote records a quoted price on the inquiry. A linked lead in an early
// pipeline stage is promoted to Proposal, and its estimated value is set
// to the quoted price.
func (s *InquiryService) Quote(ctx context.Context, id uuid.UUID, price float64, quotedBy *uuid.UUID) (*domain.Inquiry, error) {
	return s.transition(ctx, id, domain.InquiryStatusQuoted, quotedBy, func(inquiry *domain.Inquiry) {
		now := time.Now()
		inquiry.QuotedPrice = &price
		inquiry.QuotedByID = quotedBy
		inquiry.QuotedAt = &now
	}, &transitionOpts{
		estimatedValue: &price,
		historyMethod:  "Quote",
		historySummary: fmt.Sprintf("Quoted price %.2f", price),
	})
}

// Approve marks the quote approved by the customer. A linked lead moves
// to Negotiation regardless of its current stage.
func (s *InquiryService) Approve(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*domain.Inquiry, error) {
	return s.transition(ctx, id, domain.InquiryStatusApproved, actorID, nil, &transitionOpts{
		historyMethod:  "Approval",
		historySummary: "Customer approved the quotation",
	})
}

// Schedule sets the delivery date. The contact history note is written
// even when the linked lead is already in Negotiation, because the
// delivery date itself changed.
func (s *InquiryService) Schedule(ctx context.Context, id uuid.UUID, deliveryDate time.Time, actorID *uuid.UUID) (*domain.Inquiry, error) {
	return s.transition(ctx, id, domain.InquiryStatusScheduled, actorID, func(inquiry *domain.Inquiry) {
		inquiry.DeliveryDate = &deliveryDate
	}, &transitionOpts{
		historyMethod:      "Scheduling",
		historySummary:     fmt.Sprintf("Delivery scheduled for %s", deliveryDate.Format("2006-01-02")),
		historyAlwaysWrite: true,
	})
}

// Fulfill marks the inquiry delivered. A linked lead becomes Converted.
func (s *InquiryService) Fulfill(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*domain.Inquiry, error) {
	return s.transition(ctx, id, domain.InquiryStatusFulfilled, actorID, nil, &transitionOpts{
		historyMethod:  "Fulfillment",
		historySummary: "Order fulfilled and delivered",
	})
}

// Cancel closes the inquiry without affecting any linked lead
func (s *InquiryService) Cancel(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*domain.Inquiry, error) {
	return s.transition(ctx, id, domain.InquiryStatusCancelled, actorID, nil, nil)
}

// transitionOpts controls the lead-side effects of a status transition
type transitionOpts struct {
	// estimatedValue, when set, is written to the linked lead
	estimatedValue *float64
	// historyMethod/historySummary describe the contact history row
	historyMethod  string
	historySummary string
	// historyAlwaysWrite writes the contact history row even when the
	// lead status did not change
	historyAlwaysWrite bool
}

func (s *InquiryService) transition(
	ctx context.Context,
	id uuid.UUID,
	newStatus domain.InquiryStatus,
	actorID *uuid.UUID,
	mutate func(*domain.Inquiry),
	opts *transitionOpts,
) (*domain.Inquiry, error) {
	inquiry, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := inquiry.Status
	inquiry.Status = newStatus
	if mutate != nil {
		mutate(inquiry)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("RelatedLead").Save(inquiry).Error; err != nil {
			return fmt.Errorf("failed to update inquiry: %w", err)
		}

		if inquiry.RelatedLeadID == nil || opts == nil {
			return nil
		}

		var lead domain.Lead
		if err := tx.First(&lead, "id = ?", *inquiry.RelatedLeadID).Error; err != nil {
			return fmt.Errorf("failed to load linked lead: %w", err)
		}

		next := NextLeadStatus(newStatus, lead.Status)
		statusChanged := next != lead.Status

		updates := map[string]interface{}{}
		if statusChanged {
			updates["status"] = next
		}
		if opts.estimatedValue != nil {
			updates["estimated_value"] = *opts.estimatedValue
		}
		if len(updates) > 0 {
			now := time.Now()
			updates["last_contact_date"] = now
			if err := tx.Model(&domain.Lead{}).Where("id = ?", lead.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update lead: %w", err)
			}
		}

		if statusChanged {
			metadata, _ := json.Marshal(map[string]string{
				"inquiryId":     inquiry.ID.String(),
				"inquiryStatus": string(newStatus),
			})
			entry := domain.ActivityLog{
				LeadID:      &lead.ID,
				Action:      "STATUS_CHANGE",
				OldStatus:   string(lead.Status),
				NewStatus:   string(next),
				Metadata:    string(metadata),
				CreatedByID: actorID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create activity log: %w", err)
			}
		}

		if (statusChanged || opts.historyAlwaysWrite) && opts.historySummary != "" {
			history := domain.ContactHistory{
				LeadID:      &lead.ID,
				Method:      opts.historyMethod,
				Summary:     opts.historySummary,
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

	s.logger.Info("inquiry transitioned",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(newStatus)),
	)

	return s.inquiryRepo.GetByID(ctx, inquiry.ID)
}

// ConvertToLead promotes an unlinked inquiry into a lead. The company is
// matched by name or created on the fly, the lead is seeded with the
// inquiry's contact details, and a contact history row records the
// origin. Everything commits together.
func (s *InquiryService) ConvertToLead(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*domain.ConvertInquiryResponse, error) {
	inquiry, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if inquiry.RelatedLeadID != nil {
		return nil, ErrAlreadyLinked
	}

	companyName := inquiry.CompanyName
	if companyName == "" {
		companyName = inquiry.CustomerName + "'s Company"
	}

	var lead domain.Lead
	var company domain.Company

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&company, "name = ?", companyName).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			company = domain.Company{
				Name:          companyName,
				Email:         inquiry.Email,
				Phone:         inquiry.Phone,
				ContactPerson: inquiry.CustomerName,
				IsActive:      true,
			}
			if err := tx.Create(&company).Error; err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up company: %w", err)
		}

		source := inquiry.ReferenceSource
		if source == "" {
			source = "Inquiry"
		}

		lead = domain.Lead{
			CompanyID:     company.ID,
			ContactPerson: inquiry.CustomerName,
			Email:         inquiry.Email,
			Phone:         inquiry.Phone,
			Status:        domain.LeadStatusNew,
			Source:        source,
			AssignedToID:  actorID,
		}
		if err := tx.Create(&lead).Error; err != nil {
			return fmt.Errorf("failed to create lead: %w", err)
		}

		history := domain.ContactHistory{
			LeadID:      &lead.ID,
			Method:      "Inquiry",
			Summary:     fmt.Sprintf("Lead created from inquiry for %s", inquiry.ProductType),
			ContactedAt: time.Now(),
			CreatedByID: actorID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create contact history: %w", err)
		}

		if err := tx.Model(&domain.Inquiry{}).
			Where("id = ?", inquiry.ID).
			Update("related_lead_id", lead.ID).Error; err != nil {
			return fmt.Errorf("failed to link inquiry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inquiry converted to lead",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("lead_id", lead.ID.String()),
		zap.String("company", company.Name),
	)

	return &domain.ConvertInquiryResponse{Lead: &lead, Company: &company}, nil
}

// CheckCustomerExists looks for an existing company or lead matching the
// given details. An exact company name match wins over contact matches.
func (s *InquiryService) CheckCustomerExists(ctx context.Context, req *domain.CustomerCheckRequest) (*domain.CustomerCheckResponse, error) {
	if req.CompanyName != "" {
		company, err := s.companyRepo.GetByName(ctx, req.CompanyName)
		if err == nil {
			return &domain.CustomerCheckResponse{Exists: true, Company: company}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if req.Email != "" || req.Phone != "" {
		lead, err := s.leadRepo.FindByContact(ctx, req.Email, req.Phone)
		if err == nil {
			return &domain.CustomerCheckResponse{Exists: true, Lead: lead, Company: lead.Company}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return &domain.CustomerCheckResponse{Exists: false}, nil
}
