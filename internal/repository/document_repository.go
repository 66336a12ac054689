package repository

import (
	"context"
	"fmt"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentRepository handles database operations for documents and categories
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document row
func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document with its category
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns documents, optionally filtered by category, newest first
func (r *DocumentRepository) List(ctx context.Context, page, pageSize int, categoryID *uuid.UUID) ([]domain.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Document{})

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	var docs []domain.Document
	err := query.
		Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, total, nil
}

// Delete removes a document row
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Document{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByCategory returns the number of documents in a category
func (r *DocumentRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Document{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// CreateCategory inserts a new document category
func (r *DocumentRepository) CreateCategory(ctx context.Context, category *domain.DocumentCategory) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create document category: %w", err)
	}
	return nil
}

// GetCategoryByID retrieves a category by ID
func (r *DocumentRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*domain.DocumentCategory, error) {
	var category domain.DocumentCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories ordered by name
func (r *DocumentRepository) ListCategories(ctx context.Context) ([]domain.DocumentCategory, error) {
	var categories []domain.DocumentCategory
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list document categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes a category row
func (r *DocumentRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.DocumentCategory{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete document category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
