package service

import (
	"context"
	"errors"

	"github.com/mastermind-fa/product-inventory-api/internal/apperrors"
	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"github.com/mastermind-fa/product-inventory-api/internal/repository"
)

type ProductRepository interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, params models.GetProductParams) (*models.Product, error)
	Update(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, params models.DeleteProductParams) (*models.Product, error)
	List(ctx context.Context, filter models.ListProductsFilter) ([]*models.Product, error)
	Count(ctx context.Context, filter models.ListProductsFilter) (int64, error)
	Ping(ctx context.Context) error
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	// Structural validation (required fields, ranges) is handled by the API layer.
	product, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, translate(err, "create product", "")
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, params models.GetProductParams) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, params)
	if err != nil {
		return nil, translate(err, "get product", params.ProductID)
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, translate(err, "update product", req.ID)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, params models.DeleteProductParams) error {
	if _, err := s.repo.Delete(ctx, params); err != nil {
		return translate(err, "delete product", params.ProductID)
	}
	return nil
}

// ListProducts returns one page of products together with the total number
// of products matching the filter. The count ignores paging and sort.
func (s *ProductService) ListProducts(ctx context.Context, filter models.ListProductsFilter) (*models.ListProductsResult, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "list products", "")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, translate(err, "count products", "")
	}

	return &models.ListProductsResult{
		Products:      products,
		TotalProducts: total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    totalPages(total, filter.Limit),
	}, nil
}

// Health reports whether the backing store is reachable.
func (s *ProductService) Health(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return apperrors.NewServiceUnavailableError("product store unreachable")
	}
	return nil
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

func translate(err error, operation, productID string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFoundError("product", productID)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(operation)
	default:
		return err
	}
}
