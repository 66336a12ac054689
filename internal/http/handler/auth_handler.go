package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ferromax/backoffice-api/internal/auth"
	"github.com/ferromax/backoffice-api/internal/cache"
	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	sessions    *auth.SessionManager
	permCache   *cache.PermissionCache
	logger      *zap.Logger
}

func NewAuthHandler(
	userService *service.UserService,
	sessions *auth.SessionManager,
	permCache *cache.PermissionCache,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		permCache:   permCache,
		logger:      logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticates by email and password, returning a JWT and setting a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to log in")
		return
	}

	// Browser clients use the cookie; API clients use the token
	if err := h.sessions.Establish(w, r, result.User.ID); err != nil {
		h.logger.Warn("failed to establish session", zap.Error(err))
	}

	respondJSON(w, http.StatusOK, result)
}

// Logout godoc
// @Summary Log out
// @Description Expires the session cookie
// @Tags Auth
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Warn("failed to clear session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the current user with role and granted permissions
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to load user")
		return
	}

	var granted []string
	if userCtx.RoleID != nil {
		granted, err = h.permCache.Get(r.Context(), *userCtx.RoleID)
		if err != nil {
			h.logger.Error("failed to load role permissions",
				zap.String("role_id", userCtx.RoleID.String()),
				zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to load permissions")
			return
		}
	}

	respondJSON(w, http.StatusOK, domain.AuthUserDTO{
		User:        user,
		Permissions: granted,
		IsAdmin:     userCtx.IsAdmin(),
	})
}
