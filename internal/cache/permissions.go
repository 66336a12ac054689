package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RolePermissionLoader loads the permission names granted to a role
type RolePermissionLoader interface {
	RolePermissionNames(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

// PermissionCache caches role permission sets with a short TTL so the
// permission gate does not hit the database on every request. Backed by
// redis when configured, otherwise by an in-process map. Role changes
// must call Invalidate.
type PermissionCache struct {
	rdb    *redis.Client
	loader RolePermissionLoader
	ttl    time.Duration
	logger *zap.Logger

	mu    sync.RWMutex
	local map[uuid.UUID]localEntry
}

type localEntry struct {
	perms     []string
	expiresAt time.Time
}

const redisKeyPrefix = "perm:role:"

// NewPermissionCache creates a new PermissionCache. rdb may be nil, in
// which case the in-process store is used.
func NewPermissionCache(rdb *redis.Client, loader RolePermissionLoader, ttl time.Duration, logger *zap.Logger) *PermissionCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PermissionCache{
		rdb:    rdb,
		loader: loader,
		ttl:    ttl,
		logger: logger,
		local:  make(map[uuid.UUID]localEntry),
	}
}

// Get returns the permission names for a role, loading and caching on miss
func (c *PermissionCache) Get(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	if c.rdb != nil {
		if perms, ok := c.getRedis(ctx, roleID); ok {
			return perms, nil
		}
	} else {
		c.mu.RLock()
		entry, ok := c.local[roleID]
		c.mu.RUnlock()
		if ok && time.Now().Before(entry.expiresAt) {
			return entry.perms, nil
		}
	}

	perms, err := c.loader.RolePermissionNames(ctx, roleID)
	if err != nil {
		return nil, err
	}

	c.set(ctx, roleID, perms)
	return perms, nil
}

// Invalidate drops the cached permission set for a role. Must be called
// whenever a role's permissions change.
func (c *PermissionCache) Invalidate(ctx context.Context, roleID uuid.UUID) {
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, redisKeyPrefix+roleID.String()).Err(); err != nil {
			c.logger.Warn("failed to invalidate permission cache entry",
				zap.String("role_id", roleID.String()),
				zap.Error(err),
			)
		}
		return
	}

	c.mu.Lock()
	delete(c.local, roleID)
	c.mu.Unlock()
}

func (c *PermissionCache) getRedis(ctx context.Context, roleID uuid.UUID) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, redisKeyPrefix+roleID.String()).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("permission cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var perms []string
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		c.logger.Warn("permission cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return perms, true
}

func (c *PermissionCache) set(ctx context.Context, roleID uuid.UUID, perms []string) {
	if c.rdb != nil {
		raw, err := json.Marshal(perms)
		if err != nil {
			return
		}
		if err := c.rdb.Set(ctx, redisKeyPrefix+roleID.String(), raw, c.ttl).Err(); err != nil {
			c.logger.Warn("permission cache write failed", zap.Error(err))
		}
		return
	}

	c.mu.Lock()
	c.local[roleID] = localEntry{perms: perms, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
