package repository

import (
	"context"
	"os"
	"testing"

	"github.com/mastermind-fa/product-inventory-api/internal/database"
	"github.com/nhalm/pgxkit"
	"github.com/stretchr/testify/require"
)

func TestPostgresProductRepository_Contract(t *testing.T) {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, database.MigrateUp(databaseURL))

	ctx := context.Background()
	db := pgxkit.NewDB()
	require.NoError(t, db.Connect(ctx, databaseURL))
	t.Cleanup(func() { _ = db.Shutdown(ctx) })

	runProductStoreContract(t, func(t *testing.T) productStore {
		_, err := db.Exec(ctx, "TRUNCATE products")
		require.NoError(t, err)
		return NewPostgresProductRepository(db)
	})
}
