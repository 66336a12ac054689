package auth

import (
	"fmt"
	"time"

	"github.com/ferromax/backoffice-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by bearer tokens issued at login
type Claims struct {
	Email    string `json:"email"`
	RoleName string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates bearer tokens
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a new JWTManager
func NewJWTManager(cfg *config.AuthConfig) *JWTManager {
	return &JWTManager{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry(),
	}
}

// Issue creates a signed token for the given user
func (m *JWTManager) Issue(userID uuid.UUID, email, roleName string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    email,
		RoleName: roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and verifies a token, returning the user ID and claims
func (m *JWTManager) Validate(tokenString string) (uuid.UUID, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, nil, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return userID, claims, nil
}
