package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuotationHandler handles HTTP requests for quotations
type QuotationHandler struct {
	quotationService *service.QuotationService
	logger           *zap.Logger
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *service.QuotationService, logger *zap.Logger) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		logger:           logger,
	}
}

// List godoc
// @Summary List quotations
// @Tags Quotations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(Draft, Sent, Accepted, Rejected, Expired)
// @Param clientId query string false "Filter by client ID"
// @Param leadId query string false "Filter by lead ID"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /quotations [get]
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	filter := &repository.QuotationFilter{}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.QuotationStatus(s)
		filter.Status = &status
	}
	if cid := r.URL.Query().Get("clientId"); cid != "" {
		if id, err := uuid.Parse(cid); err == nil {
			filter.ClientID = &id
		}
	}
	if lid := r.URL.Query().Get("leadId"); lid != "" {
		if id, err := uuid.Parse(lid); err == nil {
			filter.LeadID = &id
		}
	}

	result, err := h.quotationService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		h.logger.Error("failed to list quotations", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list quotations")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create quotation
// @Description Creates a draft quotation for exactly one of a client or a lead
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body domain.CreateQuotationRequest true "Quotation data"
// @Success 201 {object} domain.QuotationDTO
// @Failure 400 {object} domain.APIError "Exactly one of clientId or leadId is required"
// @Failure 404 {object} domain.APIError "Client or lead not found"
// @Security BearerAuth
// @Router /quotations [post]
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quotation, err := h.quotationService.Create(r.Context(), &req, actorID(r))
	if err != nil {
		h.logger.Error("failed to create quotation", zap.Error(err))
		respondServiceError(w, err, "Failed to create quotation")
		return
	}

	w.Header().Set("Location", "/api/v1/quotations/"+quotation.ID.String())
	respondJSON(w, http.StatusCreated, quotation)
}

// GetByID godoc
// @Summary Get quotation
// @Description Returns the quotation with its derived customer view
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} domain.QuotationDTO
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id} [get]
func (h *QuotationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID: must be a valid UUID")
		return
	}

	quotation, err := h.quotationService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get quotation")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// PDF godoc
// @Summary Download quotation PDF
// @Description Renders the quotation as a PDF document
// @Tags Quotations
// @Produce application/pdf
// @Param id path string true "Quotation ID"
// @Success 200
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID: must be a valid UUID")
		return
	}

	pdfBytes, err := h.quotationService.RenderPDF(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to render quotation PDF", zap.Error(err), zap.String("quotation_id", id.String()))
		respondServiceError(w, err, "Failed to render quotation PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quotation.pdf"`)
	_, _ = io.Copy(w, bytes.NewReader(pdfBytes))
}

// Send godoc
// @Summary Send quotation
// @Description Renders and stores the PDF, emails it to the customer and marks the quotation Sent
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} domain.QuotationDTO
// @Failure 400 {object} domain.APIError "Already sent, not in Draft, or no customer contact to send to"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotations/{id}/send [post]
func (h *QuotationHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID: must be a valid UUID")
		return
	}

	quotation, err := h.quotationService.Send(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to send quotation", zap.Error(err), zap.String("quotation_id", id.String()))
		respondServiceError(w, err, "Failed to send quotation")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// Accept godoc
// @Summary Accept quotation
// @Description Marks a sent quotation as accepted by the customer
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} domain.QuotationDTO
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Quotation is not in Sent status"
// @Security BearerAuth
// @Router /quotations/{id}/accept [post]
func (h *QuotationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID: must be a valid UUID")
		return
	}

	quotation, err := h.quotationService.Accept(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to accept quotation")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// Reject godoc
// @Summary Reject quotation
// @Description Marks a sent quotation as rejected by the customer
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} domain.QuotationDTO
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Quotation is not in Sent status"
// @Security BearerAuth
// @Router /quotations/{id}/reject [post]
func (h *QuotationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID: must be a valid UUID")
		return
	}

	quotation, err := h.quotationService.Reject(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to reject quotation")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}
