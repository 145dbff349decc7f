package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mastermind-fa/product-inventory-api/internal/apperrors"
	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"github.com/mastermind-fa/product-inventory-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepository fails every call with err.
type failingRepository struct {
	err error
}

func (f failingRepository) Create(context.Context, *models.CreateProductRequest) (*models.Product, error) {
	return nil, f.err
}

func (f failingRepository) GetByID(context.Context, models.GetProductParams) (*models.Product, error) {
	return nil, f.err
}

func (f failingRepository) Update(context.Context, *models.UpdateProductRequest) (*models.Product, error) {
	return nil, f.err
}

func (f failingRepository) Delete(context.Context, models.DeleteProductParams) (*models.Product, error) {
	return nil, f.err
}

func (f failingRepository) List(context.Context, models.ListProductsFilter) ([]*models.Product, error) {
	return nil, f.err
}

func (f failingRepository) Count(context.Context, models.ListProductsFilter) (int64, error) {
	return 0, f.err
}

func (f failingRepository) Ping(context.Context) error {
	return f.err
}

func TestProductService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(repository.NewMemoryProductRepository())

	created, err := svc.CreateProduct(ctx, &models.CreateProductRequest{Name: "Notebook", Price: 3.5, Stock: 100})
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, models.GetProductParams{ProductID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProductService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(repository.NewMemoryProductRepository())
	name := "renamed"

	_, err := svc.GetProduct(ctx, models.GetProductParams{ProductID: "prod_missing"})
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "prod_missing", notFound.ID)

	_, err = svc.UpdateProduct(ctx, &models.UpdateProductRequest{ID: "prod_missing", Name: &name})
	assert.ErrorAs(t, err, &notFound)

	err = svc.DeleteProduct(ctx, models.DeleteProductParams{ProductID: "prod_missing"})
	assert.ErrorAs(t, err, &notFound)
}

func TestProductService_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(repository.NewMemoryProductRepository())

	created, err := svc.CreateProduct(ctx, &models.CreateProductRequest{Name: "Pen"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, models.DeleteProductParams{ProductID: created.ID}))

	_, err = svc.GetProduct(ctx, models.GetProductParams{ProductID: created.ID})
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestProductService_ListPagination(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(repository.NewMemoryProductRepository())

	var ids []string
	for i := 1; i <= 25; i++ {
		p, err := svc.CreateProduct(ctx, &models.CreateProductRequest{Name: fmt.Sprintf("item-%d", i)})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	result, err := svc.ListProducts(ctx, models.ListProductsFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, result.TotalProducts)
	assert.EqualValues(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Limit)
	require.Len(t, result.Products, 10)
	assert.Equal(t, ids[10], result.Products[0].ID)
}

func TestProductService_ListEmpty(t *testing.T) {
	svc := NewProductService(repository.NewMemoryProductRepository())

	result, err := svc.ListProducts(context.Background(), models.ListProductsFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, result.TotalProducts)
	assert.Zero(t, result.TotalPages)
	assert.Empty(t, result.Products)
}

func TestProductService_StoreFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	svc := NewProductService(failingRepository{err: boom})

	_, err := svc.CreateProduct(ctx, &models.CreateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, boom)

	_, err = svc.ListProducts(ctx, models.ListProductsFilter{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, boom)

	var unavailable *apperrors.ServiceUnavailableError
	assert.ErrorAs(t, svc.Health(ctx), &unavailable)
}

func TestProductService_DeadlineBecomesTimeout(t *testing.T) {
	svc := NewProductService(failingRepository{err: fmt.Errorf("list products: %w", context.DeadlineExceeded)})

	_, err := svc.ListProducts(context.Background(), models.ListProductsFilter{Page: 1, Limit: 10})
	var timeout *apperrors.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "list products", timeout.Operation)
}

func TestTotalPages(t *testing.T) {
	assert.EqualValues(t, 0, totalPages(0, 10))
	assert.EqualValues(t, 1, totalPages(1, 10))
	assert.EqualValues(t, 1, totalPages(10, 10))
	assert.EqualValues(t, 3, totalPages(25, 10))
	assert.EqualValues(t, 0, totalPages(25, 0))
}
