package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/mapper"
	"github.com/ferromax/backoffice-api/internal/pdf"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuotationService implements quotation lifecycle: drafting, numbering,
// PDF rendering and sending.
type QuotationService struct {
	db            *gorm.DB
	quotationRepo *repository.QuotationRepository
	clientRepo    *repository.ClientRepository
	leadRepo      *repository.LeadRepository
	seqRepo       *repository.SequenceRepository
	renderer      *pdf.QuotationRenderer
	store         storage.Storage
	mailer        Mailer
	logger        *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	db *gorm.DB,
	quotationRepo *repository.QuotationRepository,
	clientRepo *repository.ClientRepository,
	leadRepo *repository.LeadRepository,
	seqRepo *repository.SequenceRepository,
	renderer *pdf.QuotationRenderer,
	store storage.Storage,
	mailer Mailer,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		db:            db,
		quotationRepo: quotationRepo,
		clientRepo:    clientRepo,
		leadRepo:      leadRepo,
		seqRepo:       seqRepo,
		renderer:      renderer,
		store:         store,
		mailer:        mailer,
		logger:        logger,
	}
}

// FormatQuotationNumber renders a quotation number, e.g. QTN-2026-0017
func FormatQuotationNumber(year, seq int) string {
	return fmt.Sprintf("QTN-%d-%04d", year, seq)
}

// CustomerView resolves the recipient of a quotation. A quotation with
// neither a client nor a lead reference cannot be rendered or sent.
func CustomerView(q *domain.Quotation) (*domain.QuotationCustomerView, error) {
	view, ok := mapper.QuotationCustomerView(q)
	if !ok {
		return nil, ErrNoCustomerRef
	}
	return view, nil
}

// Create drafts a new quotation. Line totals and the tax breakdown are
// computed server-side; the quotation number is allocated in the same
// transaction as the insert.
func (s *QuotationService) Create(ctx context.Context, req *domain.CreateQuotationRequest, createdBy *uuid.UUID) (*domain.QuotationDTO, error) {
	if (req.ClientID == nil) == (req.LeadID == nil) {
		return nil, fmt.Errorf("%w: exactly one of clientId or leadId must be set", ErrInvalidInput)
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *req.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: client", ErrNotFound)
			}
			return nil, err
		}
	}
	if req.LeadID != nil {
		if _, err := s.leadRepo.GetByID(ctx, *req.LeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: lead", ErrNotFound)
			}
			return nil, err
		}
	}

	quotation := &domain.Quotation{
		Status:      domain.QuotationStatusDraft,
		ClientID:    req.ClientID,
		LeadID:      req.LeadID,
		TaxRate:     req.TaxRate,
		IssueDate:   time.Now(),
		ValidUntil:  req.ValidUntil,
		Notes:       req.Notes,
		CreatedByID: createdBy,
	}

	var subtotal float64
	for _, item := range req.Items {
		lineTotal := round2(item.Quantity * item.UnitPrice)
		subtotal += lineTotal
		quotation.Items = append(quotation.Items, domain.QuotationItem{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
	}
	quotation.Subtotal = round2(subtotal)
	quotation.TaxAmount = round2(subtotal * req.TaxRate / 100)
	quotation.Total = round2(quotation.Subtotal + quotation.TaxAmount)

	year := time.Now().Year()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.seqRepo.NextValueTx(tx, domain.SequenceQuotation, year)
		if err != nil {
			return err
		}
		quotation.QuotationNumber = FormatQuotationNumber(year, seq)

		if err := tx.Create(quotation).Error; err != nil {
			return fmt.Errorf("failed to create quotation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("number", quotation.QuotationNumber),
		zap.Float64("total", quotation.Total),
	)

	return s.GetByID(ctx, quotation.ID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetByID retrieves a quotation with its resolved customer view.
// The customer view is nil when neither reference resolves.
func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuotationDTO, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dto := &domain.QuotationDTO{Quotation: *quotation}
	if customer, err := CustomerView(quotation); err == nil {
		dto.Customer = customer
	}
	return dto, nil
}

// List returns a page of quotations
func (s *QuotationService) List(ctx context.Context, page, pageSize int, filter *repository.QuotationFilter) (*domain.PaginatedResponse, error) {
	quotations, total, err := s.quotationRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       quotations,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// RenderPDF renders the quotation as a PDF document
func (s *QuotationService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	customer, err := CustomerView(quotation)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(quotation, customer, &buf); err != nil {
		return nil, fmt.Errorf("failed to render quotation PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Send renders the PDF, stores it, mails it to the customer and marks
// the quotation Sent. A quotation that was already sent is rejected.
func (s *QuotationService) Send(ctx context.Context, id uuid.UUID) (*domain.QuotationDTO, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if quotation.Status == domain.QuotationStatusSent {
		return nil, ErrAlreadySent
	}
	if quotation.Status != domain.QuotationStatusDraft {
		return nil, fmt.Errorf("%w: cannot send a %s quotation", ErrConflict, quotation.Status)
	}

	customer, err := CustomerView(quotation)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(quotation, customer, &buf); err != nil {
		return nil, fmt.Errorf("failed to render quotation PDF: %w", err)
	}

	filename := quotation.QuotationNumber + ".pdf"
	storagePath, _, err := s.store.Upload(ctx, filename, "application/pdf", bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to store quotation PDF: %w", err)
	}

	quotation.PDFPath = storagePath
	quotation.Status = domain.QuotationStatusSent
	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}

	if customer.Email != "" {
		subject := "Quotation " + quotation.QuotationNumber
		body := fmt.Sprintf("Dear %s,\n\nPlease find attached quotation %s.\n", customer.Name, quotation.QuotationNumber)
		if err := s.mailer.Send(ctx, customer.Email, subject, body, filename); err != nil {
			// The quotation stays Sent; delivery failures are surfaced in logs only
			s.logger.Warn("failed to send quotation mail",
				zap.String("quotation_id", quotation.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("quotation sent",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("number", quotation.QuotationNumber),
	)

	return s.GetByID(ctx, quotation.ID)
}

// Accept marks a sent quotation accepted by the customer
func (s *QuotationService) Accept(ctx context.Context, id uuid.UUID) (*domain.QuotationDTO, error) {
	return s.setStatus(ctx, id, domain.QuotationStatusSent, domain.QuotationStatusAccepted)
}

// Reject marks a sent quotation rejected by the customer
func (s *QuotationService) Reject(ctx context.Context, id uuid.UUID) (*domain.QuotationDTO, error) {
	return s.setStatus(ctx, id, domain.QuotationStatusSent, domain.QuotationStatusRejected)
}

func (s *QuotationService) setStatus(ctx context.Context, id uuid.UUID, from, to domain.QuotationStatus) (*domain.QuotationDTO, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if quotation.Status != from {
		return nil, fmt.Errorf("%w: quotation is %s, expected %s", ErrConflict, quotation.Status, from)
	}

	quotation.Status = to
	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, quotation.ID)
}
