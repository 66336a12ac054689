package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/cache"
	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoleService manages roles and their permission sets. Every permission
// change invalidates the permission cache for the affected role.
type RoleService struct {
	roleRepo  *repository.RoleRepository
	permCache *cache.PermissionCache
	logger    *zap.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo *repository.RoleRepository, permCache *cache.PermissionCache, logger *zap.Logger) *RoleService {
	return &RoleService{
		roleRepo:  roleRepo,
		permCache: permCache,
		logger:    logger,
	}
}

// Create adds a new role, optionally with an initial permission set
func (s *RoleService) Create(ctx context.Context, req *domain.CreateRoleRequest) (*domain.Role, error) {
	role := &domain.Role{
		Name:        req.Name,
		Description: req.Description,
	}

	if len(req.PermissionIDs) > 0 {
		permissions, err := s.roleRepo.GetPermissionsByIDs(ctx, req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		if len(permissions) != len(req.PermissionIDs) {
			return nil, fmt.Errorf("%w: one or more permissions do not exist", ErrInvalidInput)
		}
		role.Permissions = permissions
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name),
	)

	return s.roleRepo.GetByID(ctx, role.ID)
}

// GetByID retrieves a role with its permissions
func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

// List returns all roles
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns all known permissions
func (s *RoleService) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return s.roleRepo.ListPermissions(ctx)
}

// ReplacePermissions swaps the role's permission set and drops the
// cached copy so the change takes effect on the next request.
func (s *RoleService) ReplacePermissions(ctx context.Context, roleID uuid.UUID, req *domain.UpdateRolePermissionsRequest) (*domain.Role, error) {
	role, err := s.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.roleRepo.GetPermissionsByIDs(ctx, req.PermissionIDs)
	if err != nil {
		return nil, err
	}
	if len(permissions) != len(req.PermissionIDs) {
		return nil, fmt.Errorf("%w: one or more permissions do not exist", ErrInvalidInput)
	}

	if err := s.roleRepo.ReplacePermissions(ctx, role, permissions); err != nil {
		return nil, err
	}

	s.permCache.Invalidate(ctx, roleID)

	s.logger.Info("role permissions replaced",
		zap.String("role_id", roleID.String()),
		zap.Int("permissions", len(permissions)),
	)

	return s.roleRepo.GetByID(ctx, roleID)
}
