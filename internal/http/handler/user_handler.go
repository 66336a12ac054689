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

// UserHandler handles HTTP requests for user administration
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param includeInactive query bool false "Include deactivated accounts"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	result, err := h.userService.List(r.Context(), page, pageSize, includeInactive)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body domain.CreateUserRequest true "User data"
// @Success 201 {object} domain.User
// @Failure 404 {object} domain.APIError "Role not found"
// @Failure 400 {object} domain.APIError "Email already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		respondServiceError(w, err, "Failed to create user")
		return
	}

	w.Header().Set("Location", "/api/v1/users/"+user.ID.String())
	respondJSON(w, http.StatusCreated, user)
}

// GetByID godoc
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID: must be a valid UUID")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Update godoc
// @Summary Update user
// @Description Updates profile, role assignment, OJT flag, IP allowlist or active status
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body domain.UpdateUserRequest true "Fields to update"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID: must be a valid UUID")
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update user", zap.Error(err), zap.String("user_id", id.String()))
		respondServiceError(w, err, "Failed to update user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change password
// @Description Changes the caller's own password after verifying the old one
// @Tags Users
// @Accept json
// @Param request body domain.ChangePasswordRequest true "Old and new password"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError "Old password does not match"
// @Security BearerAuth
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := actorID(r)
	if userID == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), *userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(w, err, "Failed to change password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
