package service

import (
	"context"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/facebook"
	"github.com/ferromax/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// InsightSource pulls campaign metrics from an ad platform
type InsightSource interface {
	CampaignInsights(ctx context.Context, since, until time.Time) ([]facebook.CampaignInsight, error)
}

// MarketingService syncs ad campaign insights into the local store
type MarketingService struct {
	source        InsightSource
	marketingRepo *repository.MarketingRepository
	logger        *zap.Logger
}

// NewMarketingService creates a new MarketingService
func NewMarketingService(source InsightSource, marketingRepo *repository.MarketingRepository, logger *zap.Logger) *MarketingService {
	return &MarketingService{
		source:        source,
		marketingRepo: marketingRepo,
		logger:        logger,
	}
}

// Sync pulls insights for a date range and upserts them per
// campaign/date. Re-running a sync replaces earlier rows.
func (s *MarketingService) Sync(ctx context.Context, since, until time.Time) (*domain.MarketingSyncResult, error) {
	insights, err := s.source.CampaignInsights(ctx, since, until)
	if err != nil {
		return nil, err
	}

	syncedAt := time.Now()
	campaigns := make(map[string]struct{})
	for _, insight := range insights {
		row := &domain.MarketingInsight{
			CampaignID:   insight.CampaignID,
			CampaignName: insight.CampaignName,
			Date:         insight.Date,
			Impressions:  insight.Impressions,
			Clicks:       insight.Clicks,
			Spend:        insight.Spend,
			Leads:        insight.Leads,
			SyncedAt:     syncedAt,
		}
		if err := s.marketingRepo.Upsert(ctx, row); err != nil {
			return nil, err
		}
		campaigns[insight.CampaignID] = struct{}{}
	}

	result := &domain.MarketingSyncResult{
		Campaigns: len(campaigns),
		Rows:      len(insights),
		SyncedAt:  syncedAt,
	}

	s.logger.Info("marketing insights synced",
		zap.Int("campaigns", result.Campaigns),
		zap.Int("rows", result.Rows),
	)

	return result, nil
}

// SyncRecent syncs the trailing N days ending today
func (s *MarketingService) SyncRecent(ctx context.Context, days int) (*domain.MarketingSyncResult, error) {
	if days <= 0 {
		days = 7
	}
	until := time.Now()
	since := until.AddDate(0, 0, -days)
	return s.Sync(ctx, since, until)
}

// Insights lists stored insights for a date range
func (s *MarketingService) Insights(ctx context.Context, from, to time.Time, campaignID string) ([]domain.MarketingInsight, error) {
	return s.marketingRepo.List(ctx, from, to, campaignID)
}
