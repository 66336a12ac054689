package handler

import (
	"net/http"

	"github.com/ferromax/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// ERPHandler triggers the read-only product catalog sync from the
// legacy ERP. The service reports disabled when no ERP is configured.
type ERPHandler struct {
	erpSyncService *service.ERPSyncService
	logger         *zap.Logger
}

// NewERPHandler creates a new ERPHandler
func NewERPHandler(erpSyncService *service.ERPSyncService, logger *zap.Logger) *ERPHandler {
	return &ERPHandler{
		erpSyncService: erpSyncService,
		logger:         logger,
	}
}

// Sync godoc
// @Summary Trigger ERP catalog sync
// @Description Pulls sellable items from the ERP and upserts catalog fields by SKU. Stock levels are never touched.
// @Tags ERP
// @Produce json
// @Success 200 {object} service.ERPSyncResult
// @Failure 500 {object} domain.APIError
// @Failure 503 {object} domain.APIError "ERP sync not configured"
// @Security BearerAuth
// @Router /erp/sync [post]
func (h *ERPHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.erpSyncService == nil || !h.erpSyncService.Enabled() {
		respondWithError(w, http.StatusServiceUnavailable, "ERP sync is not configured")
		return
	}

	result, err := h.erpSyncService.Sync(r.Context())
	if err != nil {
		h.logger.Error("ERP sync failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "ERP sync failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
