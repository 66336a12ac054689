package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SalesOrderHandler handles HTTP requests for sales orders
type SalesOrderHandler struct {
	salesOrderService *service.SalesOrderService
	logger            *zap.Logger
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(salesOrderService *service.SalesOrderService, logger *zap.Logger) *SalesOrderHandler {
	return &SalesOrderHandler{
		salesOrderService: salesOrderService,
		logger:            logger,
	}
}

// List godoc
// @Summary List sales orders
// @Tags SalesOrders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(Pending, Confirmed, Delivered, Cancelled)
// @Param clientId query string false "Filter by client ID"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /sales-orders [get]
func (h *SalesOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	var status *domain.SalesOrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.SalesOrderStatus(s)
		status = &st
	}
	var clientID *uuid.UUID
	if cid := r.URL.Query().Get("clientId"); cid != "" {
		if id, err := uuid.Parse(cid); err == nil {
			clientID = &id
		}
	}

	result, err := h.salesOrderService.List(r.Context(), page, pageSize, status, clientID)
	if err != nil {
		h.logger.Error("failed to list sales orders", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list sales orders")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Convert quotation to sales order
// @Description Creates a sales order from an accepted quotation, mirroring its items and decrementing stock
// @Tags SalesOrders
// @Accept json
// @Produce json
// @Param request body domain.CreateSalesOrderRequest true "Quotation to convert"
// @Success 201 {object} domain.SalesOrder
// @Failure 400 {object} domain.APIError "Quotation not accepted, already converted, missing a client reference, or insufficient stock"
// @Failure 404 {object} domain.APIError "Quotation not found"
// @Security BearerAuth
// @Router /sales-orders [post]
func (h *SalesOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSalesOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.salesOrderService.CreateFromQuotation(r.Context(), req.QuotationID, actorID(r))
	if err != nil {
		h.logger.Error("failed to create sales order",
			zap.Error(err),
			zap.String("quotation_id", req.QuotationID.String()))
		respondServiceError(w, err, "Failed to create sales order")
		return
	}

	w.Header().Set("Location", "/api/v1/sales-orders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, order)
}

// GetByID godoc
// @Summary Get sales order
// @Tags SalesOrders
// @Produce json
// @Param id path string true "Sales order ID"
// @Success 200 {object} domain.SalesOrder
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Sales order not found"
// @Security BearerAuth
// @Router /sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid sales order ID: must be a valid UUID")
		return
	}

	order, err := h.salesOrderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get sales order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary Update sales order status
// @Description Moves the order along Pending, Confirmed, Delivered. Cancellation is allowed before delivery.
// @Tags SalesOrders
// @Accept json
// @Produce json
// @Param id path string true "Sales order ID"
// @Param request body domain.UpdateSalesOrderStatusRequest true "New status"
// @Success 200 {object} domain.SalesOrder
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Invalid status transition"
// @Security BearerAuth
// @Router /sales-orders/{id}/status [patch]
func (h *SalesOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid sales order ID: must be a valid UUID")
		return
	}

	var req domain.UpdateSalesOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.salesOrderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("failed to update sales order status", zap.Error(err), zap.String("order_id", id.String()))
		respondServiceError(w, err, "Failed to update sales order status")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
