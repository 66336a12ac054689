package auth

import (
	"fmt"
	"net/http"

	"github.com/ferromax/backoffice-api/internal/config"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// SessionName is the session cookie name. Kept as connect.sid for
// compatibility with existing browser clients.
const SessionName = "connect.sid"

const sessionUserKey = "userId"

// SessionManager wraps the cookie store for browser sessions
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(cfg *config.AuthConfig) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.SessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SessionSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// Establish writes the user ID into a new session cookie
func (s *SessionManager) Establish(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		// A corrupt cookie yields an error plus a fresh session; use the fresh one
		session, _ = s.store.New(r, SessionName)
	}
	session.Values[sessionUserKey] = userID.String()
	return session.Save(r, w)
}

// Clear expires the session cookie
func (s *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// UserID extracts the user ID from the session cookie
func (s *SessionManager) UserID(r *http.Request) (uuid.UUID, error) {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session: %w", err)
	}
	raw, ok := session.Values[sessionUserKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("no session")
	}
	return uuid.Parse(raw)
}
