package repository

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productStore interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, params models.GetProductParams) (*models.Product, error)
	Update(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, params models.DeleteProductParams) (*models.Product, error)
	List(ctx context.Context, filter models.ListProductsFilter) ([]*models.Product, error)
	Count(ctx context.Context, filter models.ListProductsFilter) (int64, error)
	Ping(ctx context.Context) error
}

// runProductStoreContract exercises behaviour every backend must share.
// newStore must return an empty store.
func runProductStoreContract(t *testing.T, newStore func(t *testing.T) productStore) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, &models.CreateProductRequest{
			Name: "Desk Lamp", Price: 24.5, Category: "home", Stock: 7, Description: "warm light",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := s.GetByID(ctx, models.GetProductParams{ProductID: created.ID})
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Desk Lamp", got.Name)
		assert.Equal(t, 24.5, got.Price)
		assert.Equal(t, "home", got.Category)
		assert.Equal(t, 7, got.Stock)
		assert.Equal(t, "warm light", got.Description)
	})

	t.Run("missing ids", func(t *testing.T) {
		s := newStore(t)
		missing := "prod_2ArTLVPddDx8vZk7CqEbiYp1"
		name := "x"

		_, err := s.GetByID(ctx, models.GetProductParams{ProductID: missing})
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Update(ctx, &models.UpdateProductRequest{ID: missing, Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Delete(ctx, models.DeleteProductParams{ProductID: missing})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, &models.CreateProductRequest{
			Name: "Mug", Price: 8, Category: "kitchen", Stock: 40, Description: "ceramic",
		})
		require.NoError(t, err)

		stock := 12
		updated, err := s.Update(ctx, &models.UpdateProductRequest{ID: created.ID, Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, 12, updated.Stock)
		assert.Equal(t, "Mug", updated.Name)
		assert.Equal(t, 8.0, updated.Price)
		assert.Equal(t, "kitchen", updated.Category)
		assert.Equal(t, "ceramic", updated.Description)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	})

	t.Run("delete then get", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, &models.CreateProductRequest{Name: "Chair", Price: 60})
		require.NoError(t, err)

		deleted, err := s.Delete(ctx, models.DeleteProductParams{ProductID: created.ID})
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)

		_, err = s.GetByID(ctx, models.GetProductParams{ProductID: created.ID})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("pagination in store order", func(t *testing.T) {
		s := newStore(t)
		ids := make([]string, 25)
		for i := range ids {
			p, err := s.Create(ctx, &models.CreateProductRequest{Name: fmt.Sprintf("item-%02d", i+1), Price: float64(i)})
			require.NoError(t, err)
			ids[i] = p.ID
		}

		filter := models.ListProductsFilter{Page: 2, Limit: 10}
		page, err := s.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page, 10)
		assert.Equal(t, ids[10], page[0].ID)
		assert.Equal(t, ids[19], page[9].ID)

		last, err := s.List(ctx, models.ListProductsFilter{Page: 3, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, last, 5)

		beyond, err := s.List(ctx, models.ListProductsFilter{Page: 4, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, beyond)

		total, err := s.Count(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 25, total)
	})

	t.Run("page far past the end", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, &models.CreateProductRequest{Name: "only"})
		require.NoError(t, err)

		for _, filter := range []models.ListProductsFilter{
			{Page: math.MaxInt, Limit: 2},
			{Page: math.MaxInt, Limit: 100, Sort: models.ParseSort("-price")},
		} {
			page, err := s.List(ctx, filter)
			require.NoError(t, err)
			assert.Empty(t, page)
		}
	})

	t.Run("sort by price", func(t *testing.T) {
		s := newStore(t)
		for _, price := range []float64{30, 5, 12.5, 99, 0, 12.5} {
			_, err := s.Create(ctx, &models.CreateProductRequest{Name: "p", Price: price})
			require.NoError(t, err)
		}

		asc, err := s.List(ctx, models.ListProductsFilter{Page: 1, Limit: 10, Sort: models.ParseSort("price")})
		require.NoError(t, err)
		require.Len(t, asc, 6)
		for i := 1; i < len(asc); i++ {
			assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
		}

		desc, err := s.List(ctx, models.ListProductsFilter{Page: 1, Limit: 10, Sort: models.ParseSort("-price")})
		require.NoError(t, err)
		require.Len(t, desc, 6)
		for i := 1; i < len(desc); i++ {
			assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		s := newStore(t)
		for i, category := range []string{"tools", "garden", "tools", "toys", "tools"} {
			_, err := s.Create(ctx, &models.CreateProductRequest{Name: fmt.Sprintf("p%d", i), Category: category})
			require.NoError(t, err)
		}

		tools := "tools"
		filter := models.ListProductsFilter{Category: &tools, Page: 1, Limit: 2}
		page, err := s.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page, 2)
		for _, p := range page {
			assert.Equal(t, "tools", p.Category)
		}

		total, err := s.Count(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
