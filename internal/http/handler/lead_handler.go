package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeadHandler handles HTTP requests for sales leads
type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// List godoc
// @Summary List leads
// @Tags Leads
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(New, Contacted, Qualified, Proposal, Negotiation, Converted, Lost)
// @Param assignedTo query string false "Filter by assigned user ID"
// @Param search query string false "Search in contact person, company, email and phone"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	filter := &repository.LeadFilter{
		Search: r.URL.Query().Get("search"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.LeadStatus(s)
		filter.Status = &status
	}
	if aid := r.URL.Query().Get("assignedTo"); aid != "" {
		if id, err := uuid.Parse(aid); err == nil {
			filter.AssignedToID = &id
		}
	}

	result, err := h.leadService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create lead
// @Description Creates a lead, attaching it to an existing company or creating one by name
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body domain.CreateLeadRequest true "Lead data"
// @Success 201 {object} domain.Lead
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Company not found"
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create lead", zap.Error(err))
		respondServiceError(w, err, "Failed to create lead")
		return
	}

	w.Header().Set("Location", "/api/v1/leads/"+lead.ID.String())
	respondJSON(w, http.StatusCreated, lead)
}

// GetByID godoc
// @Summary Get lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	lead, err := h.leadService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get lead")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// Update godoc
// @Summary Update lead
// @Description Updates lead fields. Status changes go through the status endpoint.
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondServiceError(w, err, "Failed to update lead")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// UpdateStatus godoc
// @Summary Update lead status
// @Description Moves the lead along the pipeline. Converted and Lost are terminal.
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.UpdateLeadStatusRequest true "New status with optional note"
// @Success 200 {object} domain.Lead
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Invalid status transition"
// @Security BearerAuth
// @Router /leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.UpdateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.UpdateStatus(r.Context(), id, req.Status, req.Note, actorID(r))
	if err != nil {
		h.logger.Error("failed to update lead status", zap.Error(err), zap.String("lead_id", id.String()))
		respondServiceError(w, err, "Failed to update lead status")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// Delete godoc
// @Summary Delete lead
// @Tags Leads
// @Param id path string true "Lead ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	if err := h.leadService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondServiceError(w, err, "Failed to delete lead")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddContactHistory godoc
// @Summary Record a contact touch
// @Description Appends a contact history entry and bumps the lead's last contact date
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.CreateContactHistoryRequest true "Contact details"
// @Success 201 {object} domain.ContactHistory
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /leads/{id}/contact-history [post]
func (h *LeadHandler) AddContactHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.CreateContactHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	entry, err := h.leadService.AddContactHistory(r.Context(), id, &req, actorID(r))
	if err != nil {
		h.logger.Error("failed to add contact history", zap.Error(err), zap.String("lead_id", id.String()))
		respondServiceError(w, err, "Failed to add contact history")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// ContactHistory godoc
// @Summary List contact history
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} domain.ContactHistory
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /leads/{id}/contact-history [get]
func (h *LeadHandler) ContactHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := h.leadService.ContactHistory(r.Context(), id, limit)
	if err != nil {
		respondServiceError(w, err, "Failed to list contact history")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// ActivityLog godoc
// @Summary List lead activity
// @Description Returns the audit trail of status changes and other actions on the lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} domain.ActivityLog
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /leads/{id}/activity [get]
func (h *LeadHandler) ActivityLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := h.leadService.ActivityLog(r.Context(), id, limit)
	if err != nil {
		respondServiceError(w, err, "Failed to list activity log")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
