package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleRepository handles database operations for roles and permissions
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create inserts a new role
func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// GetByID retrieves a role with its permissions
func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns all roles with their permissions
func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Order("name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// ReplacePermissions replaces the role's permission set
func (r *RoleRepository) ReplacePermissions(ctx context.Context, role *domain.Role, permissions []domain.Permission) error {
	err := r.db.WithContext(ctx).Model(role).Association("Permissions").Replace(permissions)
	if err != nil {
		return fmt.Errorf("failed to replace role permissions: %w", err)
	}
	return nil
}

// RolePermissionNames returns the uppercased permission names granted to a role.
// Satisfies cache.RolePermissionLoader.
func (r *RoleRepository) RolePermissionNames(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	role, err := r.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(role.Permissions))
	for i, p := range role.Permissions {
		names[i] = strings.ToUpper(p.Name)
	}
	return names, nil
}

// ListPermissions returns all known permissions
func (r *RoleRepository) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	var permissions []domain.Permission
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

// GetPermissionsByIDs retrieves permissions matching the given IDs
func (r *RoleRepository) GetPermissionsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Permission, error) {
	var permissions []domain.Permission
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions: %w", err)
	}
	return permissions, nil
}
