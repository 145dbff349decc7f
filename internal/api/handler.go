package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"github.com/nhalm/canonlog"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ProductService defines only the methods the API layer needs from the product service.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, params models.GetProductParams) (*models.Product, error)
	UpdateProduct(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, params models.DeleteProductParams) error
	ListProducts(ctx context.Context, filter models.ListProductsFilter) (*models.ListProductsResult, error)
	Health(ctx context.Context) error
}

type Handler struct {
	productSvc   ProductService
	maxPageLimit int
}

func NewHandler(productSvc ProductService, maxPageLimit int) *Handler {
	if maxPageLimit <= 0 {
		maxPageLimit = 100
	}
	return &Handler{
		productSvc:   productSvc,
		maxPageLimit: maxPageLimit,
	}
}

// CreateProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductRequest true "Product"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, err, "Invalid product data", "")
		return
	}

	if err := ValidateStruct(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_name": req.Name,
	})

	serviceReq := models.CreateProductRequest{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Description: req.Description,
	}

	product, err := h.productSvc.CreateProduct(r.Context(), &serviceReq)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_id": product.ID,
	})

	Created(w, convertToProductResponse(product))
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sort query string false "Sort field, prefix with - for descending" example(-price)
// @Param category query string false "Exact category match"
// @Success 200 {object} ListResponse{data=[]ProductResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r.URL.Query(), h.maxPageLimit)

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"page":  filter.Page,
		"limit": filter.Limit,
	})

	result, err := h.productSvc.ListProducts(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responses := make([]ProductResponse, len(result.Products))
	for i, p := range result.Products {
		responses[i] = convertToProductResponse(p)
	}

	List(w, responses, result)
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	canonlog.AddRequestFields(r.Context(), map[string]any{"product_id": id})

	product, err := h.productSvc.GetProduct(r.Context(), models.GetProductParams{
		ProductID: id,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToProductResponse(product))
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Applies a partial update; omitted fields keep their value.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body UpdateProductRequest true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [put]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	canonlog.AddRequestFields(r.Context(), map[string]any{"product_id": id})

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, err, "Invalid product data", "")
		return
	}

	if err := ValidateStruct(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	serviceReq := models.UpdateProductRequest{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Description: req.Description,
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), &serviceReq)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToProductResponse(product))
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	canonlog.AddRequestFields(r.Context(), map[string]any{"product_id": id})

	if err := h.productSvc.DeleteProduct(r.Context(), models.DeleteProductParams{
		ProductID: id,
	}); err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, MessageResponse{Message: "Product deleted"})
}

// Health answers 200 OK while the product store is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.productSvc.Health(r.Context()); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func parseListFilter(q url.Values, maxPageLimit int) models.ListProductsFilter {
	limit := positiveIntOr(q.Get("limit"), defaultLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return models.ListProductsFilter{
		Category: ptrOrNil(q.Get("category")),
		Page:     positiveIntOr(q.Get("page"), defaultPage),
		Limit:    limit,
		Sort:     models.ParseSort(q.Get("sort")),
	}
}

func positiveIntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func convertToProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Category:    product.Category,
		Stock:       product.Stock,
		Description: product.Description,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
