package models

import (
	"math"
	"strings"
	"time"
)

type Product struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	Stock       int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateProductRequest struct {
	Name        string
	Price       float64
	Category    string
	Stock       int
	Description string
}

// UpdateProductRequest is a partial patch; nil fields are left untouched.
type UpdateProductRequest struct {
	ID          string
	Name        *string
	Price       *float64
	Category    *string
	Stock       *int
	Description *string
}

// Apply writes the non-nil patch fields onto p.
func (u *UpdateProductRequest) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
}

type GetProductParams struct {
	ProductID string
}

type DeleteProductParams struct {
	ProductID string
}

// SortField names a sortable product attribute as exposed on the API.
type SortField string

const (
	SortByName        SortField = "name"
	SortByPrice       SortField = "price"
	SortByCategory    SortField = "category"
	SortByStock       SortField = "stock"
	SortByDescription SortField = "description"
	SortByCreatedAt   SortField = "createdAt"
	SortByUpdatedAt   SortField = "updatedAt"
)

var sortFields = map[SortField]struct{}{
	SortByName:        {},
	SortByPrice:       {},
	SortByCategory:    {},
	SortByStock:       {},
	SortByDescription: {},
	SortByCreatedAt:   {},
	SortByUpdatedAt:   {},
}

type Sort struct {
	Field      SortField
	Descending bool
}

// ParseSort reads a single-field sort expression such as "price" or "-price".
// It returns nil for an empty expression or an unknown field.
func ParseSort(expr string) *Sort {
	expr = strings.TrimSpace(expr)
	desc := strings.HasPrefix(expr, "-")
	field := SortField(strings.TrimPrefix(expr, "-"))
	if _, ok := sortFields[field]; !ok {
		return nil
	}
	return &Sort{Field: field, Descending: desc}
}

type ListProductsFilter struct {
	Category *string
	Page     int
	Limit    int
	Sort     *Sort
}

// Skip is the number of matching products that precede the requested page.
// It saturates at math.MaxInt for pages far past the end.
func (f ListProductsFilter) Skip() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

type ListProductsResult struct {
	Products      []*Product
	TotalProducts int64
	Page          int
	Limit         int
	TotalPages    int64
}
