package service

import (
	"context"
	"errors"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/erp"
	"github.com/ferromax/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ERPSyncResult reports the outcome of a product catalog pull
type ERPSyncResult struct {
	Created  int       `json:"created"`
	Updated  int       `json:"updated"`
	SyncedAt time.Time `json:"syncedAt"`
}

// ERPSyncService pulls the ERP item master into the product catalog.
// Catalog fields follow the ERP; stock levels are owned locally and are
// never touched by the sync.
type ERPSyncService struct {
	client      *erp.Client
	productRepo *repository.ProductRepository
	logger      *zap.Logger
}

// NewERPSyncService creates a new ERPSyncService
func NewERPSyncService(client *erp.Client, productRepo *repository.ProductRepository, logger *zap.Logger) *ERPSyncService {
	return &ERPSyncService{
		client:      client,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Enabled reports whether the ERP connection is available
func (s *ERPSyncService) Enabled() bool {
	return s.client.IsEnabled()
}

// Sync upserts the sellable ERP items into the product catalog, matching
// on SKU
func (s *ERPSyncService) Sync(ctx context.Context) (*ERPSyncResult, error) {
	items, err := s.client.ActiveItems(ctx)
	if err != nil {
		return nil, err
	}

	syncedAt := time.Now()
	result := &ERPSyncResult{SyncedAt: syncedAt}

	for _, item := range items {
		product, err := s.productRepo.GetBySKU(ctx, item.SKU)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}

			product = &domain.Product{
				SKU:          item.SKU,
				Name:         item.Name,
				Description:  item.Description,
				Category:     item.Category,
				Unit:         unitOrDefault(item.Unit),
				UnitPrice:    item.UnitPrice,
				ERPReference: item.Reference,
				ERPSyncedAt:  &syncedAt,
				IsActive:     true,
			}
			if err := s.productRepo.Create(ctx, product); err != nil {
				return nil, err
			}
			result.Created++
			continue
		}

		product.Name = item.Name
		product.Description = item.Description
		product.Category = item.Category
		product.Unit = unitOrDefault(item.Unit)
		product.UnitPrice = item.UnitPrice
		product.ERPReference = item.Reference
		product.ERPSyncedAt = &syncedAt
		if err := s.productRepo.Update(ctx, product); err != nil {
			return nil, err
		}
		result.Updated++
	}

	s.logger.Info("ERP product catalog synced",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
	)

	return result, nil
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "pc"
	}
	return unit
}
