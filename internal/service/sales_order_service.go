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
	"gorm.io/gorm/clause"
)

// SalesOrderService converts accepted quotations into orders and tracks
// fulfilment. Conversion reserves stock for every product-backed line.
type SalesOrderService struct {
	db            *gorm.DB
	orderRepo     *repository.SalesOrderRepository
	quotationRepo *repository.QuotationRepository
	seqRepo       *repository.SequenceRepository
	logger        *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	db *gorm.DB,
	orderRepo *repository.SalesOrderRepository,
	quotationRepo *repository.QuotationRepository,
	seqRepo *repository.SequenceRepository,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		db:            db,
		orderRepo:     orderRepo,
		quotationRepo: quotationRepo,
		seqRepo:       seqRepo,
		logger:        logger,
	}
}

// FormatOrderNumber renders a sales order number, e.g. SO-2026-0003
func FormatOrderNumber(year, seq int) string {
	return fmt.Sprintf("SO-%d-%04d", year, seq)
}

// CreateFromQuotation converts an accepted quotation into a sales order.
// Line items are mirrored, on-hand stock is decremented for every line
// that references a product, and the whole conversion is atomic: a
// single short line rolls back the order and every other decrement.
func (s *SalesOrderService) CreateFromQuotation(ctx context.Context, quotationID uuid.UUID, createdBy *uuid.UUID) (*domain.SalesOrder, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quotation", ErrNotFound)
		}
		return nil, err
	}

	if quotation.Status != domain.QuotationStatusAccepted {
		return nil, ErrNotAccepted
	}
	if quotation.ClientID == nil {
		return nil, fmt.Errorf("%w: quotation must be linked to a client before conversion", ErrNoCustomerRef)
	}

	if _, err := s.orderRepo.GetByQuotation(ctx, quotationID); err == nil {
		return nil, fmt.Errorf("%w: quotation already converted to a sales order", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order := &domain.SalesOrder{
		QuotationID: quotation.ID,
		ClientID:    *quotation.ClientID,
		Status:      domain.SalesOrderStatusPending,
		Total:       quotation.Total,
		CreatedByID: createdBy,
	}
	for _, item := range quotation.Items {
		order.Items = append(order.Items, domain.SalesOrderItem{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}

	year := time.Now().Year()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.seqRepo.NextValueTx(tx, domain.SequenceSalesOrder, year)
		if err != nil {
			return err
		}
		order.OrderNumber = FormatOrderNumber(year, seq)

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create sales order: %w", err)
		}

		for _, item := range quotation.Items {
			if item.ProductID == nil {
				continue
			}

			var product domain.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", *item.ProductID).Error
			if err != nil {
				return fmt.Errorf("failed to lock product: %w", err)
			}

			remaining := product.QuantityOnHand - item.Quantity
			if remaining < 0 {
				return fmt.Errorf("%w: %s has %.2f on hand, order needs %.2f",
					ErrInsufficientStock, product.Name, product.QuantityOnHand, item.Quantity)
			}

			if err := tx.Model(&product).Update("quantity_on_hand", remaining).Error; err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}

			movement := &domain.StockMovement{
				ProductID:   product.ID,
				Type:        domain.StockMovementOut,
				Quantity:    item.Quantity,
				Reference:   order.OrderNumber,
				CreatedByID: createdBy,
			}
			if err := tx.Create(movement).Error; err != nil {
				return fmt.Errorf("failed to create stock movement: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("quotation_id", quotation.ID.String()),
	)

	return s.orderRepo.GetByID(ctx, order.ID)
}

// GetByID retrieves a sales order
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// List returns a page of sales orders
func (s *SalesOrderService) List(ctx context.Context, page, pageSize int, status *domain.SalesOrderStatus, clientID *uuid.UUID) (*domain.PaginatedResponse, error) {
	orders, total, err := s.orderRepo.List(ctx, page, pageSize, status, clientID)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       orders,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// UpdateStatus moves a sales order through its lifecycle. Pending orders
// can be confirmed or cancelled; confirmed orders can be delivered or
// cancelled; delivered and cancelled orders are terminal.
func (s *SalesOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SalesOrderStatus) (*domain.SalesOrder, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid sales order status: %s", ErrInvalidInput, status)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !validOrderTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: cannot move sales order from %s to %s", ErrConflict, order.Status, status)
	}

	order.Status = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("sales order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(status)),
	)

	return order, nil
}

func validOrderTransition(from, to domain.SalesOrderStatus) bool {
	switch from {
	case domain.SalesOrderStatusPending:
		return to == domain.SalesOrderStatusConfirmed || to == domain.SalesOrderStatusCancelled
	case domain.SalesOrderStatusConfirmed:
		return to == domain.SalesOrderStatusDelivered || to == domain.SalesOrderStatusCancelled
	default:
		return false
	}
}
