package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarketingRepository handles database operations for marketing insights
type MarketingRepository struct {
	db *gorm.DB
}

// NewMarketingRepository creates a new MarketingRepository
func NewMarketingRepository(db *gorm.DB) *MarketingRepository {
	return &MarketingRepository{db: db}
}

// Upsert replaces the metrics row for a campaign/date
func (r *MarketingRepository) Upsert(ctx context.Context, insight *domain.MarketingInsight) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "campaign_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"campaign_name", "impressions", "clicks", "spend", "leads", "synced_at",
		}),
	}).Create(insight).Error
	if err != nil {
		return fmt.Errorf("failed to upsert marketing insight: %w", err)
	}
	return nil
}

// List returns insights in a date range, newest first
func (r *MarketingRepository) List(ctx context.Context, from, to time.Time, campaignID string) ([]domain.MarketingInsight, error) {
	query := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02"))

	if campaignID != "" {
		query = query.Where("campaign_id = ?", campaignID)
	}

	var insights []domain.MarketingInsight
	err := query.
		Order("date DESC, campaign_id ASC").
		Find(&insights).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list marketing insights: %w", err)
	}
	return insights, nil
}
