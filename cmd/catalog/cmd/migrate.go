package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mastermind-fa/product-inventory-api/internal/config"
	"github.com/mastermind-fa/product-inventory-api/internal/database"
	"github.com/mastermind-fa/product-inventory-api/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrations("up")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback the last migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrations("down")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func runMigrations(direction string) error {
	databaseURL := viper.GetString("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	store := viper.GetString("STORE")
	if store == "" {
		store = config.StoreFromURL(databaseURL)
	}

	switch store {
	case config.StorePostgres:
		return migratePostgres(direction, databaseURL)
	case config.StoreMongo:
		return migrateMongo(direction, databaseURL)
	default:
		return fmt.Errorf("migrations are not supported for store %q", store)
	}
}

func migratePostgres(direction, databaseURL string) error {
	switch direction {
	case "up":
		if err := database.MigrateUp(databaseURL); err != nil {
			return err
		}
		fmt.Println("Migrations completed successfully")
	case "down":
		if err := database.MigrateDown(databaseURL); err != nil {
			return err
		}
		fmt.Println("Migration rolled back successfully")
	}
	return nil
}

// Mongo has no schema; "up" builds the indexes the list queries rely on.
func migrateMongo(direction, uri string) error {
	if direction != "up" {
		return fmt.Errorf("mongo store does not support %q migrations", direction)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := connectMongo(ctx, uri)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := repository.NewMongoProductRepository(client.Database(viper.GetString("MONGO_DATABASE")))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}
	fmt.Println("Indexes ensured successfully")
	return nil
}
