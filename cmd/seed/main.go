package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	appapi "github.com/bookworks/bookstore-api/internal/app/api"
	catalogpostgres "github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	userpostgres "github.com/bookworks/bookstore-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/bookworks/bookstore-api/internal/platform/migrations"
	platformpostgres "github.com/bookworks/bookstore-api/internal/platform/postgres"
	"github.com/bookworks/bookstore-api/internal/platform/seed"
)

// seed loads the sample catalog into PostgreSQL. It requires POSTGRES_DSN.
func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := appapi.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required for seeding")
	}

	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer platformpostgres.Close(db)

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	catalogRepo := catalogpostgres.NewRepository(db)
	userRepo := userpostgres.NewRepository(db)
	repos := seed.Repositories{
		Books:      catalogRepo,
		Authors:    catalogRepo.Authors(),
		Categories: catalogRepo.Categories(),
		Users:      userRepo,
	}
	if err := seed.Apply(ctx, repos, logger); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	logger.Info("seeding complete")
}
