package jobs

import (
	"context"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"go.uber.org/zap"
)

// MarketingSyncJobName is the name of the Facebook insights sync job
const MarketingSyncJobName = "marketing_sync"

// ERPSyncJobName is the name of the product catalog sync job
const ERPSyncJobName = "erp_sync"

// DefaultSyncTimeout bounds a single sync run
const DefaultSyncTimeout = 10 * time.Minute

// marketingSyncDays is how far back each scheduled insights pull reaches.
// Re-pulling recent days picks up Facebook's late attribution updates.
const marketingSyncDays = 7

// MarketingSyncer pulls ad campaign insights for the trailing N days.
// This interface lets the job call the service without importing the
// service package directly.
type MarketingSyncer interface {
	SyncRecent(ctx context.Context, days int) (*domain.MarketingSyncResult, error)
}

// MarketingSyncJob runs the scheduled Facebook insights pull
type MarketingSyncJob struct {
	service MarketingSyncer
	logger  *zap.Logger
	timeout time.Duration
}

// NewMarketingSyncJob creates a new marketing sync job
func NewMarketingSyncJob(service MarketingSyncer, logger *zap.Logger, timeout time.Duration) *MarketingSyncJob {
	return &MarketingSyncJob{
		service: service,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one insights pull. Called by the scheduler.
func (j *MarketingSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	result, err := j.service.SyncRecent(ctx, marketingSyncDays)
	if err != nil {
		j.logger.Error("marketing sync job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("marketing sync job completed",
		zap.Int("campaigns", result.Campaigns),
		zap.Int("rows", result.Rows),
		zap.Duration("duration", time.Since(start)))
}

// RegisterMarketingSyncJob registers the marketing sync job with the scheduler
func RegisterMarketingSyncJob(scheduler *Scheduler, service MarketingSyncer, logger *zap.Logger, cronExpr string) error {
	job := NewMarketingSyncJob(service, logger, DefaultSyncTimeout)
	return scheduler.AddJob(MarketingSyncJobName, cronExpr, job.Run)
}

// ERPSyncRunner runs the scheduled product catalog pull
type ERPSyncRunner struct {
	run     func(ctx context.Context) error
	logger  *zap.Logger
	timeout time.Duration
}

// NewERPSyncRunner creates a new ERP sync runner. The run function is
// expected to perform one full catalog pull.
func NewERPSyncRunner(run func(ctx context.Context) error, logger *zap.Logger, timeout time.Duration) *ERPSyncRunner {
	return &ERPSyncRunner{
		run:     run,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one catalog pull. Called by the scheduler.
func (j *ERPSyncRunner) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	if err := j.run(ctx); err != nil {
		j.logger.Error("ERP sync job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("ERP sync job completed",
		zap.Duration("duration", time.Since(start)))
}

// RegisterERPSyncJob registers the product catalog sync job with the scheduler
func RegisterERPSyncJob(scheduler *Scheduler, run func(ctx context.Context) error, logger *zap.Logger, cronExpr string) error {
	job := NewERPSyncRunner(run, logger, DefaultSyncTimeout)
	return scheduler.AddJob(ERPSyncJobName, cronExpr, job.Run)
}
