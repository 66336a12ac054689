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

type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// List godoc
// @Summary List companies
// @Tags Companies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.companyService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list companies", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list companies")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create company
// @Tags Companies
// @Accept json
// @Produce json
// @Param request body domain.CreateCompanyRequest true "Company data"
// @Success 201 {object} domain.Company
// @Failure 400 {object} domain.APIError "Company name already exists"
// @Security BearerAuth
// @Router /companies [post]
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.companyService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create company", zap.Error(err))
		respondServiceError(w, err, "Failed to create company")
		return
	}

	w.Header().Set("Location", "/api/v1/companies/"+company.ID.String())
	respondJSON(w, http.StatusCreated, company)
}

// GetByID godoc
// @Summary Get company
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} domain.Company
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID: must be a valid UUID")
		return
	}

	company, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get company")
		return
	}

	respondJSON(w, http.StatusOK, company)
}
