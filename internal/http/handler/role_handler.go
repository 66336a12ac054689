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

// RoleHandler handles HTTP requests for roles and permissions
type RoleHandler struct {
	roleService *service.RoleService
	logger      *zap.Logger
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *service.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		logger:      logger,
	}
}

// List godoc
// @Summary List roles
// @Tags Roles
// @Produce json
// @Success 200 {array} domain.Role
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /roles [get]
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list roles", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list roles")
		return
	}

	respondJSON(w, http.StatusOK, roles)
}

// Create godoc
// @Summary Create role
// @Description Creates a role, optionally with an initial permission set
// @Tags Roles
// @Accept json
// @Produce json
// @Param request body domain.CreateRoleRequest true "Role data"
// @Success 201 {object} domain.Role
// @Failure 400 {object} domain.APIError "Role name already exists or unknown permission ID"
// @Security BearerAuth
// @Router /roles [post]
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	role, err := h.roleService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create role", zap.Error(err))
		respondServiceError(w, err, "Failed to create role")
		return
	}

	w.Header().Set("Location", "/api/v1/roles/"+role.ID.String())
	respondJSON(w, http.StatusCreated, role)
}

// GetByID godoc
// @Summary Get role
// @Tags Roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} domain.Role
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Role not found"
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *RoleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}

	role, err := h.roleService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get role")
		return
	}

	respondJSON(w, http.StatusOK, role)
}

// ListPermissions godoc
// @Summary List all permissions
// @Description Returns the full permission catalog for role editing
// @Tags Roles
// @Produce json
// @Success 200 {array} domain.Permission
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /permissions [get]
func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.roleService.ListPermissions(r.Context())
	if err != nil {
		h.logger.Error("failed to list permissions", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list permissions")
		return
	}

	respondJSON(w, http.StatusOK, permissions)
}

// ReplacePermissions godoc
// @Summary Replace role permissions
// @Description Replaces the role's permission set and invalidates the permission cache
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body domain.UpdateRolePermissionsRequest true "New permission set"
// @Success 200 {object} domain.Role
// @Failure 400 {object} domain.APIError "Unknown permission ID"
// @Failure 404 {object} domain.APIError "Role not found"
// @Security BearerAuth
// @Router /roles/{id}/permissions [put]
func (h *RoleHandler) ReplacePermissions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}

	var req domain.UpdateRolePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	role, err := h.roleService.ReplacePermissions(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to replace role permissions", zap.Error(err), zap.String("role_id", id.String()))
		respondServiceError(w, err, "Failed to replace role permissions")
		return
	}

	respondJSON(w, http.StatusOK, role)
}
