package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesOrderRepository handles database operations for sales orders
type SalesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new SalesOrderRepository
func NewSalesOrderRepository(db *gorm.DB) *SalesOrderRepository {
	return &SalesOrderRepository{db: db}
}

// GetByID retrieves a sales order with items, client and source quotation
func (r *SalesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesOrder, error) {
	var order domain.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Client").
		Preload("Quotation").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByQuotation retrieves the sales order created from a quotation, if any
func (r *SalesOrderRepository) GetByQuotation(ctx context.Context, quotationID uuid.UUID) (*domain.SalesOrder, error) {
	var order domain.SalesOrder
	err := r.db.WithContext(ctx).
		First(&order, "quotation_id = ?", quotationID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns sales orders, optionally filtered by status or client, newest first
func (r *SalesOrderRepository) List(ctx context.Context, page, pageSize int, status *domain.SalesOrderStatus, clientID *uuid.UUID) ([]domain.SalesOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.SalesOrder{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales orders: %w", err)
	}

	var orders []domain.SalesOrder
	err := query.
		Preload("Items").
		Preload("Client").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales orders: %w", err)
	}

	return orders, total, nil
}

// Update saves sales order changes (items are not touched)
func (r *SalesOrderRepository) Update(ctx context.Context, order *domain.SalesOrder) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(order).Error; err != nil {
		return fmt.Errorf("failed to update sales order: %w", err)
	}
	return nil
}
