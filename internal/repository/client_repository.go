package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRepository handles database operations for clients
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns clients, optionally including deactivated ones
func (r *ClientRepository) List(ctx context.Context, page, pageSize int, search string, includeInactive bool) ([]domain.Client, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Client{})

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR account_number ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var clients []domain.Client
	err := query.
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clients).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, total, nil
}

// Update saves client changes
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a client by clearing its active flag
func (r *ClientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.Client{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
