package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mastermind-fa/product-inventory-api/internal/id"
	"github.com/mastermind-fa/product-inventory-api/internal/models"
)

// MemoryProductRepository keeps products in process memory, in insertion
// order. It backs tests and STORE=memory development runs.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string
	newID    func() string
	now      func() time.Time
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
		newID:    id.NewProductID,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryProductRepository) Create(_ context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	p := models.Product{
		ID:          r.newID(),
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.products[p.ID] = p
	r.order = append(r.order, p.ID)
	return &p, nil
}

func (r *MemoryProductRepository) GetByID(_ context.Context, params models.GetProductParams) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[params.ProductID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) Update(_ context.Context, req *models.UpdateProductRequest) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[req.ID]
	if !ok {
		return nil, ErrNotFound
	}
	req.Apply(&p)
	p.UpdatedAt = r.now()
	r.products[p.ID] = p
	return &p, nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, params models.DeleteProductParams) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[params.ProductID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.products, p.ID)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == p.ID })
	return &p, nil
}

func (r *MemoryProductRepository) List(_ context.Context, filter models.ListProductsFilter) ([]*models.Product, error) {
	r.mu.RLock()
	matched := r.matching(filter)
	r.mu.RUnlock()

	if filter.Sort != nil {
		field, desc := filter.Sort.Field, filter.Sort.Descending
		slices.SortStableFunc(matched, func(a, b *models.Product) int {
			c := compareField(a, b, field)
			if desc {
				return -c
			}
			return c
		})
	}

	skip := filter.Skip()
	if skip < 0 || skip >= len(matched) {
		return []*models.Product{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 {
		end = skip + min(filter.Limit, len(matched)-skip)
	}
	return matched[skip:end], nil
}

func (r *MemoryProductRepository) Count(_ context.Context, filter models.ListProductsFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filter))), nil
}

func (r *MemoryProductRepository) Ping(context.Context) error {
	return nil
}

// matching returns copies of the products passing the category filter, in
// insertion order. Callers must hold r.mu.
func (r *MemoryProductRepository) matching(filter models.ListProductsFilter) []*models.Product {
	out := make([]*models.Product, 0, len(r.order))
	for _, pid := range r.order {
		p := r.products[pid]
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		out = append(out, &p)
	}
	return out
}

func compareField(a, b *models.Product, field models.SortField) int {
	switch field {
	case models.SortByName:
		return strings.Compare(a.Name, b.Name)
	case models.SortByPrice:
		return cmp.Compare(a.Price, b.Price)
	case models.SortByCategory:
		return strings.Compare(a.Category, b.Category)
	case models.SortByStock:
		return cmp.Compare(a.Stock, b.Stock)
	case models.SortByDescription:
		return strings.Compare(a.Description, b.Description)
	case models.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case models.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return 0
	}
}
