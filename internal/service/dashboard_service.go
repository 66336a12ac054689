package service

import (
	"context"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// DashboardService aggregates headline counts for the dashboard
type DashboardService struct {
	leadRepo       *repository.LeadRepository
	inquiryRepo    *repository.InquiryRepository
	quotationRepo  *repository.QuotationRepository
	productRepo    *repository.ProductRepository
	attendanceRepo *repository.AttendanceRepository
	logger         *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	leadRepo *repository.LeadRepository,
	inquiryRepo *repository.InquiryRepository,
	quotationRepo *repository.QuotationRepository,
	productRepo *repository.ProductRepository,
	attendanceRepo *repository.AttendanceRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		leadRepo:       leadRepo,
		inquiryRepo:    inquiryRepo,
		quotationRepo:  quotationRepo,
		productRepo:    productRepo,
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// Stats collects the dashboard counters
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	leadsByStatus, err := s.leadRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	inquiriesByStatus, err := s.inquiryRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	openCount, openValue, err := s.quotationRepo.OpenTotals(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	presentToday, err := s.attendanceRepo.CountPresentToday(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		LeadsByStatus:     leadsByStatus,
		InquiriesByStatus: inquiriesByStatus,
		OpenQuotations:    openCount,
		QuotationValue:    openValue,
		LowStockProducts:  lowStock,
		PresentToday:      presentToday,
	}, nil
}
