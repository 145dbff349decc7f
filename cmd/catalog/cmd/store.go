package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mastermind-fa/product-inventory-api/internal/config"
	"github.com/mastermind-fa/product-inventory-api/internal/repository"
	"github.com/mastermind-fa/product-inventory-api/internal/service"
	"github.com/nhalm/pgxkit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// openStore connects the configured backend. The returned close func releases
// its connections.
func openStore(ctx context.Context, cfg *config.Config) (service.ProductRepository, func(context.Context), error) {
	switch cfg.Store {
	case config.StorePostgres:
		db := pgxkit.NewDB()
		if err := db.Connect(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closeFn := func(ctx context.Context) { _ = db.Shutdown(ctx) }
		return repository.NewPostgresProductRepository(db), closeFn, nil

	case config.StoreMongo:
		client, err := connectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewMongoProductRepository(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		closeFn := func(ctx context.Context) { _ = client.Disconnect(ctx) }
		return repo, closeFn, nil

	case config.StoreMemory:
		slog.Warn("using in-memory product store, data is lost on restart")
		return repository.NewMemoryProductRepository(), func(context.Context) {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return client, nil
}
