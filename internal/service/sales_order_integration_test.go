package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func newSalesOrderService(db *gorm.DB) *service.SalesOrderService {
	return service.NewSalesOrderService(
		db,
		repository.NewSalesOrderRepository(db),
		repository.NewQuotationRepository(db),
		repository.NewSequenceRepository(db),
		zap.NewNop(),
	)
}

func createTestProduct(t *testing.T, db *gorm.DB, sku string, onHand float64) *domain.Product {
	t.Helper()
	product := &domain.Product{
		SKU:            sku,
		Name:           "Rebar 12mm x 6m",
		Unit:           "pc",
		UnitPrice:      185.50,
		QuantityOnHand: onHand,
		IsActive:       true,
	}
	if err := db.Omit(clause.Associations).Create(product).Error; err != nil {
		t.Fatalf("create test product: %v", err)
	}
	return product
}

func createAcceptedQuotation(t *testing.T, db *gorm.DB, product *domain.Product, qty float64) *domain.Quotation {
	t.Helper()
	client := &domain.Client{Name: "Acme Builders", IsActive: true}
	require.NoError(t, db.Omit(clause.Associations).Create(client).Error)

	q := &domain.Quotation{
		QuotationNumber: service.FormatQuotationNumber(time.Now().Year(), int(time.Now().UnixNano()%10000)),
		Status:          domain.QuotationStatusAccepted,
		ClientID:        &client.ID,
		IssueDate:       time.Now(),
		Subtotal:        qty * product.UnitPrice,
		Total:           qty * product.UnitPrice,
		Items: []domain.QuotationItem{
			{
				ProductID:   &product.ID,
				Description: product.Name,
				Quantity:    qty,
				Unit:        product.Unit,
				UnitPrice:   product.UnitPrice,
				LineTotal:   qty * product.UnitPrice,
			},
		},
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func TestCreateFromQuotation_DecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newSalesOrderService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "RB-12-6", 100)
	quotation := createAcceptedQuotation(t, db, product, 40)

	order, err := svc.CreateFromQuotation(ctx, quotation.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SalesOrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.Items, 1)

	var reloaded domain.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.InDelta(t, 60, reloaded.QuantityOnHand, 0.001)

	var movements int64
	require.NoError(t, db.Model(&domain.StockMovement{}).Where("product_id = ?", product.ID).Count(&movements).Error)
	assert.Equal(t, int64(1), movements)

	// Converting the same quotation twice conflicts
	_, err = svc.CreateFromQuotation(ctx, quotation.ID, nil)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestCreateFromQuotation_InsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := newSalesOrderService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "RB-16-6", 10)
	quotation := createAcceptedQuotation(t, db, product, 40)

	_, err := svc.CreateFromQuotation(ctx, quotation.ID, nil)
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	// Nothing committed: stock unchanged, no order row
	var reloaded domain.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.InDelta(t, 10, reloaded.QuantityOnHand, 0.001)

	var orders int64
	require.NoError(t, db.Model(&domain.SalesOrder{}).Where("quotation_id = ?", quotation.ID).Count(&orders).Error)
	assert.Equal(t, int64(0), orders)
}

func TestCreateFromQuotation_RequiresAccepted(t *testing.T) {
	db := setupTestDB(t)
	svc := newSalesOrderService(db)

	product := createTestProduct(t, db, "CEM-40", 100)
	quotation := createAcceptedQuotation(t, db, product, 10)
	require.NoError(t, db.Model(&domain.Quotation{}).Where("id = ?", quotation.ID).Update("status", domain.QuotationStatusDraft).Error)

	_, err := svc.CreateFromQuotation(context.Background(), quotation.ID, nil)
	assert.ErrorIs(t, err, service.ErrNotAccepted)
}
