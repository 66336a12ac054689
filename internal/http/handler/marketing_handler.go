package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ferromax/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// MarketingHandler handles HTTP requests for Facebook campaign insights.
// The service is nil when no Facebook credentials are configured.
type MarketingHandler struct {
	marketingService *service.MarketingService
	logger           *zap.Logger
}

// NewMarketingHandler creates a new MarketingHandler
func NewMarketingHandler(marketingService *service.MarketingService, logger *zap.Logger) *MarketingHandler {
	return &MarketingHandler{
		marketingService: marketingService,
		logger:           logger,
	}
}

// Sync godoc
// @Summary Trigger marketing sync
// @Description Pulls recent campaign insights from the Facebook Graph API and upserts them
// @Tags Marketing
// @Produce json
// @Param days query int false "Days to look back" default(7)
// @Success 200 {object} domain.MarketingSyncResult
// @Failure 500 {object} domain.APIError
// @Failure 503 {object} domain.APIError "Marketing sync not configured"
// @Security BearerAuth
// @Router /marketing/sync [post]
func (h *MarketingHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.marketingService == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Marketing sync is not configured")
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days < 1 || days > 90 {
		days = 7
	}

	result, err := h.marketingService.SyncRecent(r.Context(), days)
	if err != nil {
		h.logger.Error("marketing sync failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Marketing sync failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Insights godoc
// @Summary List campaign insights
// @Description Returns stored campaign insight rows for a date range. Defaults to the last 30 days.
// @Tags Marketing
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param campaignId query string false "Filter by campaign ID"
// @Success 200 {array} domain.MarketingInsight
// @Failure 400 {object} domain.APIError "Invalid date"
// @Failure 503 {object} domain.APIError "Marketing sync not configured"
// @Security BearerAuth
// @Router /marketing/insights [get]
func (h *MarketingHandler) Insights(w http.ResponseWriter, r *http.Request) {
	if h.marketingService == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Marketing sync is not configured")
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if f := r.URL.Query().Get("from"); f != "" {
		if from, err = time.ParseInLocation(dateLayout, f, now.Location()); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid from date: expected YYYY-MM-DD")
			return
		}
	}
	if t := r.URL.Query().Get("to"); t != "" {
		if to, err = time.ParseInLocation(dateLayout, t, now.Location()); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid to date: expected YYYY-MM-DD")
			return
		}
	}

	insights, err := h.marketingService.Insights(r.Context(), from, to, r.URL.Query().Get("campaignId"))
	if err != nil {
		h.logger.Error("failed to list insights", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list insights")
		return
	}

	respondJSON(w, http.StatusOK, insights)
}
