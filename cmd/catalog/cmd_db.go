package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/modacart/catalog/app/repositories"
	"github.com/modacart/catalog/config"
	"github.com/modacart/catalog/database/seeders"
	"github.com/modacart/catalog/pkg/database"
)

// withDB runs fn against a connected database and disconnects afterwards.
func withDB(fn func(ctx context.Context) error) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	return fn(ctx)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a sample attribute catalog for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context) error {
			n, err := seeders.Run(ctx, database.DB)
			if err != nil {
				return err
			}
			fmt.Printf("seeded %d attributes\n", n)
			return nil
		})
	},
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Ensure the unique slug index and list indexes exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context) error {
			repo := repositories.NewProductRepository(database.DB)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			fmt.Println("indexes ensured")
			return nil
		})
	},
}
