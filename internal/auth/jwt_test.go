package auth_test

import (
	"testing"

	"github.com/ferromax/backoffice-api/internal/auth"
	"github.com/ferromax/backoffice-api/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndValidate(t *testing.T) {
	manager := auth.NewJWTManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	})

	userID := uuid.New()
	token, err := manager.Issue(userID, "user@example.com", "Sales")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Sales", claims.RoleName)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTManager(&config.AuthConfig{
		JWTSecret:      "secret-a",
		JWTExpiryHours: 1,
	})
	verifier := auth.NewJWTManager(&config.AuthConfig{
		JWTSecret:      "secret-b",
		JWTExpiryHours: 1,
	})

	token, err := issuer.Issue(uuid.New(), "user@example.com", "")
	require.NoError(t, err)

	_, _, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := auth.NewJWTManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		JWTExpiryHours: -1,
	})

	token, err := manager.Issue(uuid.New(), "user@example.com", "")
	require.NoError(t, err)

	_, _, err = manager.Validate(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	manager := auth.NewJWTManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	})

	_, _, err := manager.Validate("not.a.token")
	assert.Error(t, err)
}
