package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoProductRepository_Contract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	runProductStoreContract(t, func(t *testing.T) productStore {
		db := client.Database("catalog_test_" + uuid.NewString()[:8])
		t.Cleanup(func() { _ = db.Drop(ctx) })

		repo := NewMongoProductRepository(db)
		require.NoError(t, repo.EnsureIndexes(ctx))
		return repo
	})
}
