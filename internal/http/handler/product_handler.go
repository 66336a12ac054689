package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the product catalog and stock
type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// List godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param category query string false "Filter by category"
// @Param search query string false "Search in SKU and name"
// @Param includeInactive query bool false "Include inactive products"
// @Success 200 {object} domain.PaginatedResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	result, err := h.productService.List(r.Context(), page, pageSize,
		r.URL.Query().Get("category"), r.URL.Query().Get("search"), includeInactive)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create product
// @Description Creates a product; a non-zero initial stock is recorded as an IN movement
// @Tags Products
// @Accept json
// @Produce json
// @Param request body domain.CreateProductRequest true "Product data"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.APIError "SKU already exists"
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.productService.Create(r.Context(), &req, actorID(r))
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		respondServiceError(w, err, "Failed to create product")
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+product.ID.String())
	respondJSON(w, http.StatusCreated, product)
}

// GetByID godoc
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Product not found"
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Update godoc
// @Summary Update product
// @Description Updates catalog fields. Stock changes go through the stock adjustment endpoint.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body domain.UpdateProductRequest true "Fields to update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	var req domain.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.productService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update product", zap.Error(err), zap.String("product_id", id.String()))
		respondServiceError(w, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// AdjustStock godoc
// @Summary Adjust stock
// @Description Applies an IN, OUT or ADJUST movement to the product's stock level
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body domain.AdjustStockRequest true "Movement data"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.APIError
// @Failure 400 {object} domain.APIError "Insufficient stock"
// @Security BearerAuth
// @Router /products/{id}/stock [post]
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	var req domain.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.productService.AdjustStock(r.Context(), id, &req, actorID(r))
	if err != nil {
		h.logger.Error("failed to adjust stock", zap.Error(err), zap.String("product_id", id.String()))
		respondServiceError(w, err, "Failed to adjust stock")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Movements godoc
// @Summary List stock movements
// @Description Returns the movement ledger for a product, newest first
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /products/{id}/movements [get]
func (h *ProductHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	page, pageSize := pagination(r)

	result, err := h.productService.Movements(r.Context(), id, page, pageSize)
	if err != nil {
		respondServiceError(w, err, "Failed to list stock movements")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
