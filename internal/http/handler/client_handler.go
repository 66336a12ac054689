package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientHandler handles HTTP requests for billing clients
type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// List godoc
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param search query string false "Search in name, account number, email and phone"
// @Param includeInactive query bool false "Include deactivated clients"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	result, err := h.clientService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"), includeInactive)
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list clients")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create client
// @Description Creates a billing client with a generated account number
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client data"
// @Success 201 {object} domain.Client
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create client", zap.Error(err))
		respondServiceError(w, err, "Failed to create client")
		return
	}

	w.Header().Set("Location", "/api/v1/clients/"+client.ID.String())
	respondJSON(w, http.StatusCreated, client)
}

// GetByID godoc
// @Summary Get client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID: must be a valid UUID")
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Update godoc
// @Summary Update client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body domain.UpdateClientRequest true "Fields to update"
// @Success 200 {object} domain.Client
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID: must be a valid UUID")
		return
	}

	var req domain.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update client", zap.Error(err), zap.String("client_id", id.String()))
		respondServiceError(w, err, "Failed to update client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Deactivate godoc
// @Summary Deactivate client
// @Description Soft-deletes the client; history and orders remain
// @Tags Clients
// @Param id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID: must be a valid UUID")
		return
	}

	if err := h.clientService.Deactivate(r.Context(), id); err != nil {
		h.logger.Error("failed to deactivate client", zap.Error(err), zap.String("client_id", id.String()))
		respondServiceError(w, err, "Failed to deactivate client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ContactHistory godoc
// @Summary List client contact history
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} domain.ContactHistory
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id}/contact-history [get]
func (h *ClientHandler) ContactHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID: must be a valid UUID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := h.clientService.ContactHistory(r.Context(), id, limit)
	if err != nil {
		respondServiceError(w, err, "Failed to list contact history")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
