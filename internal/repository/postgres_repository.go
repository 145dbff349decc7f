package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mastermind-fa/product-inventory-api/internal/id"
	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"github.com/nhalm/pgxkit"
)

const productColumns = "id, name, price, category, stock, description, created_at, updated_at"

type productRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Price       float64   `db:"price"`
	Category    string    `db:"category"`
	Stock       int       `db:"stock"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *productRow) toModel() *models.Product {
	return &models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Category:    r.Category,
		Stock:       r.Stock,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type PostgresProductRepository struct {
	db    *pgxkit.DB
	newID func() string
}

func NewPostgresProductRepository(db *pgxkit.DB) *PostgresProductRepository {
	return &PostgresProductRepository{
		db:    db,
		newID: id.NewProductID,
	}
}

func (r *PostgresProductRepository) queryOne(ctx context.Context, sql string, args ...any) (*models.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product, err := r.queryOne(ctx,
		`INSERT INTO products (id, name, price, category, stock, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		r.newID(), req.Name, req.Price, req.Category, req.Stock, req.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return product, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, params models.GetProductParams) (*models.Product, error) {
	return r.queryOne(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		params.ProductID,
	)
}

func (r *PostgresProductRepository) Update(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error) {
	return r.queryOne(ctx,
		`UPDATE products SET
			name = COALESCE($2, name),
			price = COALESCE($3, price),
			category = COALESCE($4, category),
			stock = COALESCE($5, stock),
			description = COALESCE($6, description),
			updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING `+productColumns,
		req.ID, req.Name, req.Price, req.Category, req.Stock, req.Description,
	)
}

func (r *PostgresProductRepository) Delete(ctx context.Context, params models.DeleteProductParams) (*models.Product, error) {
	return r.queryOne(ctx,
		`DELETE FROM products WHERE id = $1 RETURNING `+productColumns,
		params.ProductID,
	)
}

func (r *PostgresProductRepository) List(ctx context.Context, filter models.ListProductsFilter) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE ($1::text IS NULL OR category = $1) `+postgresOrderBy(filter.Sort)+`
		LIMIT $2 OFFSET $3`,
		filter.Category, filter.Limit, filter.Skip(),
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	results, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	products := make([]*models.Product, len(results))
	for i, result := range results {
		products[i] = result.toModel()
	}
	return products, nil
}

func (r *PostgresProductRepository) Count(ctx context.Context, filter models.ListProductsFilter) (int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT count(*) FROM products WHERE ($1::text IS NULL OR category = $1)`,
		filter.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowTo[int64])
}

func (r *PostgresProductRepository) Ping(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "SELECT 1")
	return err
}
