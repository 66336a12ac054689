package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentHandler handles HTTP requests for the document vault
type DocumentHandler struct {
	documentService *service.DocumentService
	maxUploadMB     int64
	logger          *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *service.DocumentService, maxUploadMB int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadMB:     maxUploadMB,
		logger:          logger,
	}
}

// Upload godoc
// @Summary Upload document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param categoryId formData string false "Category to file the document under"
// @Success 201 {object} domain.Document
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError "File too large"
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	var categoryID *uuid.UUID
	if cid := r.FormValue("categoryId"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid categoryId: must be a valid UUID")
			return
		}
		categoryID = &id
	}

	doc, err := h.documentService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, categoryID, actorID(r))
	if err != nil {
		h.logger.Error("failed to upload document", zap.Error(err))
		respondServiceError(w, err, "Failed to upload document")
		return
	}

	w.Header().Set("Location", "/api/v1/documents/"+doc.ID.String())
	respondJSON(w, http.StatusCreated, doc)
}

// List godoc
// @Summary List documents
// @Tags Documents
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param categoryId query string false "Filter by category ID"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	var categoryID *uuid.UUID
	if cid := r.URL.Query().Get("categoryId"); cid != "" {
		if id, err := uuid.Parse(cid); err == nil {
			categoryID = &id
		}
	}

	result, err := h.documentService.List(r.Context(), page, pageSize, categoryID)
	if err != nil {
		h.logger.Error("failed to list documents", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get document metadata
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} domain.Document
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	doc, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get document")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// Download godoc
// @Summary Download document
// @Tags Documents
// @Produce application/octet-stream
// @Param id path string true "Document ID"
// @Success 200
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	doc, reader, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to download document", zap.Error(err), zap.String("document_id", id.String()))
		respondServiceError(w, err, "Failed to download document")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Type", doc.ContentType)

	_, _ = io.Copy(w, reader)
}

// Delete godoc
// @Summary Delete document
// @Description Removes the metadata row and the stored file
// @Tags Documents
// @Param id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete document", zap.Error(err), zap.String("document_id", id.String()))
		respondServiceError(w, err, "Failed to delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories godoc
// @Summary List document categories
// @Tags Documents
// @Produce json
// @Success 200 {array} domain.DocumentCategory
// @Security BearerAuth
// @Router /documents/categories [get]
func (h *DocumentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.documentService.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list document categories", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list document categories")
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create document category
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body domain.CreateDocumentCategoryRequest true "Category data"
// @Success 201 {object} domain.DocumentCategory
// @Failure 400 {object} domain.APIError "Category name already exists"
// @Security BearerAuth
// @Router /documents/categories [post]
func (h *DocumentHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDocumentCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	category, err := h.documentService.CreateCategory(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create document category", zap.Error(err))
		respondServiceError(w, err, "Failed to create document category")
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary Delete document category
// @Description Deletes an empty category. Categories with documents cannot be removed.
// @Tags Documents
// @Param id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Category still has documents"
// @Security BearerAuth
// @Router /documents/categories/{id} [delete]
func (h *DocumentHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID: must be a valid UUID")
		return
	}

	if err := h.documentService.DeleteCategory(r.Context(), id); err != nil {
		h.logger.Error("failed to delete document category", zap.Error(err), zap.String("category_id", id.String()))
		respondServiceError(w, err, "Failed to delete document category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
