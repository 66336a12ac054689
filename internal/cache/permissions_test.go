package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferromax/backoffice-api/internal/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLoader struct {
	perms map[uuid.UUID][]string
	err   error
	calls int
}

func (s *stubLoader) RolePermissionNames(_ context.Context, roleID uuid.UUID) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.perms[roleID], nil
}

func TestPermissionCache_LoadsAndCaches(t *testing.T) {
	roleID := uuid.New()
	loader := &stubLoader{perms: map[uuid.UUID][]string{
		roleID: {"LEADS_READ", "LEADS_WRITE"},
	}}
	c := cache.NewPermissionCache(nil, loader, time.Minute, zap.NewNop())

	perms, err := c.Get(context.Background(), roleID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"LEADS_READ", "LEADS_WRITE"}, perms)
	assert.Equal(t, 1, loader.calls)

	// Second read must come from the cache
	perms, err = c.Get(context.Background(), roleID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"LEADS_READ", "LEADS_WRITE"}, perms)
	assert.Equal(t, 1, loader.calls)
}

func TestPermissionCache_InvalidateForcesReload(t *testing.T) {
	roleID := uuid.New()
	loader := &stubLoader{perms: map[uuid.UUID][]string{
		roleID: {"PRODUCTS_READ"},
	}}
	c := cache.NewPermissionCache(nil, loader, time.Minute, zap.NewNop())

	_, err := c.Get(context.Background(), roleID)
	require.NoError(t, err)
	require.Equal(t, 1, loader.calls)

	c.Invalidate(context.Background(), roleID)

	loader.perms[roleID] = []string{"PRODUCTS_READ", "PRODUCTS_WRITE"}
	perms, err := c.Get(context.Background(), roleID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"PRODUCTS_READ", "PRODUCTS_WRITE"}, perms)
	assert.Equal(t, 2, loader.calls)
}

func TestPermissionCache_LoaderErrorPropagates(t *testing.T) {
	loader := &stubLoader{err: errors.New("db down")}
	c := cache.NewPermissionCache(nil, loader, time.Minute, zap.NewNop())

	_, err := c.Get(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestPermissionCache_ExpiredEntryReloads(t *testing.T) {
	roleID := uuid.New()
	loader := &stubLoader{perms: map[uuid.UUID][]string{
		roleID: {"DASHBOARD_VIEW"},
	}}
	c := cache.NewPermissionCache(nil, loader, time.Nanosecond, zap.NewNop())

	_, err := c.Get(context.Background(), roleID)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = c.Get(context.Background(), roleID)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}
