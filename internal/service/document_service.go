package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentService implements document upload, download and categories.
// File bytes live in blob storage; the database holds metadata only.
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	store        storage.Storage
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo *repository.DocumentRepository, store storage.Storage, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		store:        store,
		logger:       logger,
	}
}

// Upload stores the file and records its metadata. The storage path is
// internal and never leaves the service.
func (s *DocumentService) Upload(ctx context.Context, filename, contentType string, data io.Reader, categoryID *uuid.UUID, uploadedBy *uuid.UUID) (*domain.Document, error) {
	if categoryID != nil {
		if _, err := s.documentRepo.GetCategoryByID(ctx, *categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: document category", ErrNotFound)
			}
			return nil, err
		}
	}

	storagePath, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &domain.Document{
		Filename:     filename,
		ContentType:  contentType,
		Size:         size,
		StoragePath:  storagePath,
		CategoryID:   categoryID,
		UploadedByID: uploadedBy,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		// Orphaned blob cleanup; a failure here only leaks one file
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up stored file after create failure",
				zap.String("storage_path", storagePath),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("filename", filename),
		zap.Int64("size", size),
	)

	return doc, nil
}

// GetByID retrieves document metadata
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Download opens the stored file for streaming. The caller owns the
// returned reader.
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.store.Download(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return doc, reader, nil
}

// List returns a page of documents
func (s *DocumentService) List(ctx context.Context, page, pageSize int, categoryID *uuid.UUID) (*domain.PaginatedResponse, error) {
	docs, total, err := s.documentRepo.List(ctx, page, pageSize, categoryID)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResponse{
		Data:       docs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Delete removes the metadata row first, then the stored file
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		s.logger.Warn("failed to delete stored file",
			zap.String("document_id", id.String()),
			zap.String("storage_path", doc.StoragePath),
			zap.Error(err),
		)
	}

	s.logger.Info("document deleted", zap.String("document_id", id.String()))
	return nil
}

// CreateCategory adds a document category
func (s *DocumentService) CreateCategory(ctx context.Context, req *domain.CreateDocumentCategoryRequest) (*domain.DocumentCategory, error) {
	category := &domain.DocumentCategory{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.documentRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all document categories
func (s *DocumentService) ListCategories(ctx context.Context) ([]domain.DocumentCategory, error) {
	return s.documentRepo.ListCategories(ctx)
}

// DeleteCategory removes a category. Categories that still hold
// documents cannot be deleted.
func (s *DocumentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.documentRepo.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	count, err := s.documentRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.documentRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
