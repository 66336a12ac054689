package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InquiryHandler handles HTTP requests for walk-in and online inquiries
type InquiryHandler struct {
	inquiryService *service.InquiryService
	logger         *zap.Logger
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryService *service.InquiryService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		logger:         logger,
	}
}

// List godoc
// @Summary List inquiries
// @Description Returns a paginated list of inquiries
// @Tags Inquiries
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(New, Quoted, Approved, Scheduled, Fulfilled, Cancelled)
// @Param leadId query string false "Filter by linked lead ID"
// @Param search query string false "Search in customer name, company, email and phone"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries [get]
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	filter := &repository.InquiryFilter{
		Search: r.URL.Query().Get("search"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.InquiryStatus(s)
		filter.Status = &status
	}
	if lid := r.URL.Query().Get("leadId"); lid != "" {
		if id, err := uuid.Parse(lid); err == nil {
			filter.LeadID = &id
		}
	}

	result, err := h.inquiryService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		h.logger.Error("failed to list inquiries", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list inquiries")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create inquiry
// @Description Records a new inquiry from a walk-in customer or web form
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body domain.CreateInquiryRequest true "Inquiry data"
// @Success 201 {object} domain.Inquiry
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries [post]
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.inquiryService.Create(r.Context(), &req, actorID(r))
	if err != nil {
		h.logger.Error("failed to create inquiry", zap.Error(err))
		respondServiceError(w, err, "Failed to create inquiry")
		return
	}

	w.Header().Set("Location", "/api/v1/inquiries/"+inquiry.ID.String())
	respondJSON(w, http.StatusCreated, inquiry)
}

// GetByID godoc
// @Summary Get inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.Inquiry
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Inquiry not found"
// @Security BearerAuth
// @Router /inquiries/{id} [get]
func (h *InquiryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	inquiry, err := h.inquiryService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Update godoc
// @Summary Update inquiry
// @Description Updates contact and product fields of an inquiry. Status changes go through the lifecycle endpoints.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.UpdateInquiryRequest true "Fields to update"
// @Success 200 {object} domain.Inquiry
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/{id} [put]
func (h *InquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	var req domain.UpdateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.inquiryService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update inquiry", zap.Error(err), zap.String("inquiry_id", id.String()))
		respondServiceError(w, err, "Failed to update inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Delete godoc
// @Summary Delete inquiry
// @Tags Inquiries
// @Param id path string true "Inquiry ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/{id} [delete]
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	if err := h.inquiryService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete inquiry", zap.Error(err), zap.String("inquiry_id", id.String()))
		respondServiceError(w, err, "Failed to delete inquiry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Quote godoc
// @Summary Quote inquiry
// @Description Records a quoted price and moves the inquiry to Quoted
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.QuoteInquiryRequest true "Quoted price"
// @Success 200 {object} domain.Inquiry
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Invalid status transition"
// @Security BearerAuth
// @Router /inquiries/{id}/quote [post]
func (h *InquiryHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	var req domain.QuoteInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.inquiryService.Quote(r.Context(), id, req.Price, actorID(r))
	if err != nil {
		h.logger.Error("failed to quote inquiry", zap.Error(err), zap.String("inquiry_id", id.String()))
		respondServiceError(w, err, "Failed to quote inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Approve godoc
// @Summary Approve inquiry
// @Description Marks a quoted inquiry as approved by the customer
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.Inquiry
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Invalid status transition"
// @Security BearerAuth
// @Router /inquiries/{id}/approve [post]
func (h *InquiryHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	inquiry, err := h.inquiryService.Approve(r.Context(), id, actorID(r))
	if err != nil {
		respondServiceError(w, err, "Failed to approve inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Schedule godoc
// @Summary Schedule inquiry delivery
// @Description Sets the delivery date and moves the inquiry to Scheduled
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.ScheduleInquiryRequest true "Delivery date"
// @Success 200 {object} domain.Inquiry
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Invalid status transition"
// @Security BearerAuth
// @Router /inquiries/{id}/schedule [post]
func (h *InquiryHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	var req domain.ScheduleInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.inquiryService.Schedule(r.Context(), id, req.DeliveryDate, actorID(r))
	if err != nil {
		respondServiceError(w, err, "Failed to schedule inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Fulfill godoc
// @Summary Fulfill inquiry
// @Description Marks a scheduled inquiry as fulfilled
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.Inquiry
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Invalid status transition"
// @Security BearerAuth
// @Router /inquiries/{id}/fulfill [post]
func (h *InquiryHandler) Fulfill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	inquiry, err := h.inquiryService.Fulfill(r.Context(), id, actorID(r))
	if err != nil {
		respondServiceError(w, err, "Failed to fulfill inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Cancel godoc
// @Summary Cancel inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.Inquiry
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Inquiry already fulfilled or cancelled"
// @Security BearerAuth
// @Router /inquiries/{id}/cancel [post]
func (h *InquiryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	inquiry, err := h.inquiryService.Cancel(r.Context(), id, actorID(r))
	if err != nil {
		respondServiceError(w, err, "Failed to cancel inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// ConvertToLead godoc
// @Summary Convert inquiry to lead
// @Description Creates a lead (and company when missing) from an approved inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.ConvertInquiryResponse
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Inquiry already linked to a lead"
// @Security BearerAuth
// @Router /inquiries/{id}/convert [post]
func (h *InquiryHandler) ConvertToLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return
	}

	result, err := h.inquiryService.ConvertToLead(r.Context(), id, actorID(r))
	if err != nil {
		h.logger.Error("failed to convert inquiry", zap.Error(err), zap.String("inquiry_id", id.String()))
		respondServiceError(w, err, "Failed to convert inquiry")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CustomerCheck godoc
// @Summary Check for an existing customer
// @Description Looks up companies and leads by email, phone or company name before recording a new inquiry
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body domain.CustomerCheckRequest true "Lookup criteria"
// @Success 200 {object} domain.CustomerCheckResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/customer-check [post]
func (h *InquiryHandler) CustomerCheck(w http.ResponseWriter, r *http.Request) {
	var req domain.CustomerCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.inquiryService.CheckCustomerExists(r.Context(), &req)
	if err != nil {
		h.logger.Error("customer check failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Customer check failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
