package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mastermind-fa/product-inventory-api/internal/id"
	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const productsCollection = "products"

type productDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Price       float64   `bson:"price"`
	Category    string    `bson:"category"`
	Stock       int       `bson:"stock"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d *productDocument) toModel() *models.Product {
	return &models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Category:    d.Category,
		Stock:       d.Stock,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type MongoProductRepository struct {
	coll  *mongo.Collection
	newID func() string
	now   func() time.Time
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		coll:  db.Collection(productsCollection),
		newID: id.NewProductID,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes creates the indexes backing the category filter and the
// createdAt sort.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	now := r.now()
	doc := productDocument{
		ID:          r.newID(),
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, params models.GetProductParams) (*models.Product, error) {
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": params.ProductID}).Decode(&doc); err != nil {
		return nil, mapMongoError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) Update(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error) {
	set := bson.M{"updatedAt": r.now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}

	var doc productDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": req.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, params models.DeleteProductParams) (*models.Product, error) {
	var doc productDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": params.ProductID}).Decode(&doc); err != nil {
		return nil, mapMongoError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) List(ctx context.Context, filter models.ListProductsFilter) ([]*models.Product, error) {
	opts := options.Find().
		SetSkip(int64(filter.Skip())).
		SetLimit(int64(filter.Limit))
	if sortDoc := mongoSort(filter.Sort); sortDoc != nil {
		opts.SetSort(sortDoc)
	}

	cursor, err := r.coll.Find(ctx, categoryFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]*models.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].toModel()
	}
	return products, nil
}

func (r *MongoProductRepository) Count(ctx context.Context, filter models.ListProductsFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, categoryFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *MongoProductRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func categoryFilter(filter models.ListProductsFilter) bson.M {
	if filter.Category == nil {
		return bson.M{}
	}
	return bson.M{"category": *filter.Category}
}

func mapMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
