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
	"gorm.io/gorm/clause"
)

// ProductService implements catalog and stock management. Every stock
// change writes a movement row next to the balance update so the audit
// trail and the balance cannot diverge.
type ProductService struct {
	db           *gorm.DB
	productRepo  *repository.ProductRepository
	movementRepo *repository.StockMovementRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	db *gorm.DB,
	productRepo *repository.ProductRepository,
	movementRepo *repository.StockMovementRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		db:           db,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// Create inserts a new product. A non-zero initial stock is recorded as
// an IN movement.
func (s *ProductService) Create(ctx context.Context, req *domain.CreateProductRequest, actorID *uuid.UUID) (*domain.Product, error) {
	if _, err := s.productRepo.GetBySKU(ctx, req.SKU); err == nil {
		return nil, fmt.Errorf("%w: SKU %q already exists", ErrConflict, req.SKU)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = "pc"
	}

	product := &domain.Product{
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Unit:           unit,
		UnitPrice:      req.UnitPrice,
		QuantityOnHand: req.InitialStock,
		ReorderLevel:   req.ReorderLevel,
		IsActive:       true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		if req.InitialStock > 0 {
			movement := domain.StockMovement{
				ProductID:   product.ID,
				Type:        domain.StockMovementIn,
				Quantity:    req.InitialStock,
				Reference:   "Initial stock",
				CreatedByID: actorID,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return fmt.Errorf("failed to create stock movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, page, pageSize int, category, search string, includeInactive bool) (*domain.PaginatedResponse, error) {
	products, total, err := s.productRepo.List(ctx, page, pageSize, category, search, includeInactive)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Update applies partial changes to a product. Stock is never changed
// here; use AdjustStock so a movement row is written.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = *req.ReorderLevel
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStock applies a stock movement and updates the balance in one
// transaction. OUT movements that would take the balance below zero are
// rejected. ADJUST sets the balance to the given quantity.
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req *domain.AdjustStockRequest, actorID *uuid.UUID) (*domain.Product, error) {
	var product domain.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		var newBalance float64
		switch req.Type {
		case domain.StockMovementIn:
			newBalance = product.QuantityOnHand + req.Quantity
		case domain.StockMovementOut:
			newBalance = product.QuantityOnHand - req.Quantity
			if newBalance < 0 {
				return fmt.Errorf("%w: product %s has %.2f on hand", ErrInsufficientStock, product.SKU, product.QuantityOnHand)
			}
		case domain.StockMovementAdjust:
			newBalance = req.Quantity
		default:
			return fmt.Errorf("%w: unknown movement type %q", ErrInvalidInput, req.Type)
		}

		if err := tx.Model(&domain.Product{}).
			Where("id = ?", product.ID).
			Update("quantity_on_hand", newBalance).Error; err != nil {
			return fmt.Errorf("failed to update stock balance: %w", err)
		}
		product.QuantityOnHand = newBalance

		movement := domain.StockMovement{
			ProductID:   product.ID,
			Type:        req.Type,
			Quantity:    req.Quantity,
			Reference:   req.Reference,
			CreatedByID: actorID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to create stock movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.String("type", string(req.Type)),
		zap.Float64("quantity", req.Quantity),
		zap.Float64("balance", product.QuantityOnHand),
	)

	return &product, nil
}

// Movements returns the movement history for a product
func (s *ProductService) Movements(ctx context.Context, id uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	movements, total, err := s.movementRepo.ListByProduct(ctx, id, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       movements,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}
