package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ferromax/backoffice-api/internal/cache"
	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLoader fetches a user with its role preloaded
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Middleware handles authentication and the permission gate
type Middleware struct {
	jwt      *JWTManager
	sessions *SessionManager
	users    UserLoader
	perms    *cache.PermissionCache
	logger   *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(jwt *JWTManager, sessions *SessionManager, users UserLoader, perms *cache.PermissionCache, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwt:      jwt,
		sessions: sessions,
		users:    users,
		perms:    perms,
		logger:   logger,
	}
}

// Authenticate resolves the current user from a bearer token or the
// session cookie and stores it in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		userID, authType, err := m.resolveUserID(r)
		if err != nil {
			m.logger.Warn("authentication failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil || !user.IsActive {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		userCtx := &UserContext{
			UserID:      user.ID,
			Email:       user.Email,
			DisplayName: user.FullName(),
			RoleID:      user.RoleID,
			IsOJT:       user.IsOJT,
		}
		if user.Role != nil {
			userCtx.RoleName = user.Role.Name
		}

		m.logger.Debug("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("auth_type", authType),
			zap.String("user_id", userCtx.UserID.String()),
			zap.Duration("auth_duration", time.Since(start)),
		)

		ctx := WithUserContext(r.Context(), userCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) resolveUserID(r *http.Request) (uuid.UUID, string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			userID, _, err := m.jwt.Validate(parts[1])
			return userID, "jwt", err
		}
	}

	userID, err := m.sessions.UserID(r)
	return userID, "session", err
}

// forbiddenResponse echoes the required and granted permissions back to
// the caller so front-end role debugging stays possible.
type forbiddenResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message"`
	Required []string `json:"required"`
	Granted  []string `json:"granted"`
}

// RequirePermission gates a route behind one or more permissions.
// The check passes when the user's role grants ANY of the named
// permissions. A role named Admin bypasses the check entirely.
func (m *Middleware) RequirePermission(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if user.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			var granted []string
			if user.RoleID != nil {
				var err error
				granted, err = m.perms.Get(r.Context(), *user.RoleID)
				if err != nil {
					m.logger.Error("failed to load role permissions",
						zap.String("role_id", user.RoleID.String()),
						zap.Error(err),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
			}

			for _, required := range permissions {
				for _, p := range granted {
					if strings.EqualFold(p, required) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			m.logger.Warn("permission denied",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("user_id", user.UserID.String()),
				zap.Strings("required", permissions),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(forbiddenResponse{
				Error:    domain.ErrorTypeForbidden,
				Message:  "Missing required permission",
				Required: permissions,
				Granted:  granted,
			})
		})
	}
}
