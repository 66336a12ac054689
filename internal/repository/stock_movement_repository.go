package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementRepository handles database operations for stock movements.
// Movements are append-only audit rows; the running balance lives on the
// product itself.
type StockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new StockMovementRepository
func NewStockMovementRepository(db *gorm.DB) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

// Create appends a stock movement row
func (r *StockMovementRepository) Create(ctx context.Context, movement *domain.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return fmt.Errorf("failed to create stock movement: %w", err)
	}
	return nil
}

// ListByProduct returns movements for a product, newest first
func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page, pageSize int) ([]domain.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.StockMovement{}).
		Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stock movements: %w", err)
	}

	var movements []domain.StockMovement
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&movements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stock movements: %w", err)
	}

	return movements, total, nil
}
