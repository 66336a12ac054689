package handler

import (
	"net/http"

	"github.com/ferromax/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Returns pipeline counts, open quotation totals, low stock and today's attendance
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to build dashboard stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build dashboard stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
