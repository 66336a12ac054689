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

// ClientService implements billing client management. Account numbers
// follow CLT-YYYY-NNNN and come from the shared sequence table.
type ClientService struct {
	db          *gorm.DB
	clientRepo  *repository.ClientRepository
	seqRepo     *repository.SequenceRepository
	historyRepo *repository.ContactHistoryRepository
	logger      *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	db *gorm.DB,
	clientRepo *repository.ClientRepository,
	seqRepo *repository.SequenceRepository,
	historyRepo *repository.ContactHistoryRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		db:          db,
		clientRepo:  clientRepo,
		seqRepo:     seqRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// FormatAccountNumber renders a client account number, e.g. CLT-2026-0042
func FormatAccountNumber(year, seq int) string {
	return fmt.Sprintf("CLT-%d-%04d", year, seq)
}

// Create inserts a new client with a generated account number. The
// number and the client row commit in the same transaction.
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ContactPerson:   req.ContactPerson,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		TaxID:           req.TaxID,
		PaymentTerms:    req.PaymentTerms,
		IsActive:        true,
	}

	year := time.Now().Year()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.seqRepo.NextValueTx(tx, domain.SequenceClient, year)
		if err != nil {
			return err
		}
		client.AccountNumber = FormatAccountNumber(year, seq)

		if err := tx.Create(client).Error; err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("account_number", client.AccountNumber),
	)

	return client, nil
}

// GetByID retrieves a client
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

// List returns a page of clients
func (s *ClientService) List(ctx context.Context, page, pageSize int, search string, includeInactive bool) (*domain.PaginatedResponse, error) {
	clients, total, err := s.clientRepo.List(ctx, page, pageSize, search, includeInactive)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       clients,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Update applies partial changes to a client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.ContactPerson != nil {
		client.ContactPerson = *req.ContactPerson
	}
	if req.BillingAddress != nil {
		client.BillingAddress = *req.BillingAddress
	}
	if req.ShippingAddress != nil {
		client.ShippingAddress = *req.ShippingAddress
	}
	if req.TaxID != nil {
		client.TaxID = *req.TaxID
	}
	if req.PaymentTerms != nil {
		client.PaymentTerms = *req.PaymentTerms
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Deactivate soft-deletes a client
func (s *ClientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.clientRepo.Deactivate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ContactHistory returns the contact trail for a client, newest first
func (s *ClientService) ContactHistory(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.ContactHistory, error) {
	if _, err := s.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.historyRepo.ListByClient(ctx, clientID, limit)
}

// CreateFromLead creates a client seeded from a converted lead
func (s *ClientService) CreateFromLead(ctx context.Context, lead *domain.Lead) (*domain.Client, error) {
	name := lead.ContactPerson
	if lead.Company != nil {
		name = lead.Company.Name
	}
	return s.Create(ctx, &domain.CreateClientRequest{
		Name:          name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		ContactPerson: lead.ContactPerson,
	})
}
