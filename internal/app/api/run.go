package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	bookstoreserver "github.com/bookworks/bookstore-api/go"

	catalogmemory "github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/bookworks/bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/bookworks/bookstore-api/internal/domains/catalog/ports"

	ordersmemory "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/bookworks/bookstore-api/internal/domains/orders/application"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"

	usermemory "github.com/bookworks/bookstore-api/internal/domains/users/adapters/memory"
	userpostgres "github.com/bookworks/bookstore-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/bookworks/bookstore-api/internal/domains/users/application"
	userports "github.com/bookworks/bookstore-api/internal/domains/users/ports"

	"github.com/bookworks/bookstore-api/internal/platform/migrations"
	platformobservability "github.com/bookworks/bookstore-api/internal/platform/observability"
	platformpostgres "github.com/bookworks/bookstore-api/internal/platform/postgres"
	"github.com/bookworks/bookstore-api/internal/platform/seed"
)

// Run boots the bookstore HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "bookstore-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectPostgres(ctx, cfg, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	catalogService, userService, orderCore, seedRepos, ordersSeed := buildServices(db, logger)
	if err := seed.Apply(ctx, seedRepos, logger); err != nil {
		logger.Warn("sample data seeding failed", slog.String("error", err.Error()))
	} else if ordersSeed != nil {
		ordersSeed(ctx)
	}

	orderService := ordersobs.New(
		orderCore,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows orderports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := bookstoreserver.ApiHandleFunctions{
		OrdersAPI:     bookstoreserver.NewOrdersAPI(orderService, orderWorkflows),
		BooksAPI:      bookstoreserver.NewBooksAPI(catalogService),
		AuthorsAPI:    bookstoreserver.NewAuthorsAPI(catalogService),
		CategoriesAPI: bookstoreserver.NewCategoriesAPI(catalogService),
		UsersAPI:      bookstoreserver.NewUsersAPI(userService),
	}

	router := bookstoreserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("Bookstore API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Bookstore API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildServices wires repositories per storage mode. With Postgres every
// context shares one schema; without it each context runs on memory stores and
// the orders store mirrors the seeded catalog.
func buildServices(db *gorm.DB, logger *slog.Logger) (catalogports.Service, userports.Service, orderports.Service, seed.Repositories, func(context.Context)) {
	if db != nil {
		catalogRepo := catalogpostgres.NewRepository(db)
		userRepo := userpostgres.NewRepository(db)
		ordersStore := orderspostgres.NewStore(db)
		catalogService := catalogapp.NewService(catalogRepo, catalogRepo.Authors(), catalogRepo.Categories())
		userService := userapp.NewService(userRepo)
		orderCore := orderapp.NewService(ordersStore, ordersStore.Users(), ordersStore, ordersStore)
		repos := seed.Repositories{
			Books:      catalogRepo,
			Authors:    catalogRepo.Authors(),
			Categories: catalogRepo.Categories(),
			Users:      userRepo,
		}
		logger.Info("repositories configured with postgres")
		return catalogService, userService, orderCore, repos, nil
	}

	bookRepo := catalogmemory.NewBookRepository()
	authorRepo := catalogmemory.NewAuthorRepository()
	categoryRepo := catalogmemory.NewCategoryRepository()
	userRepo := usermemory.NewRepository()
	ordersStore := ordersmemory.NewStore()
	catalogService := catalogapp.NewService(bookRepo, authorRepo, categoryRepo)
	userService := userapp.NewService(userRepo)
	orderCore := orderapp.NewService(ordersStore, ordersStore.Users(), ordersStore, ordersStore)
	repos := seed.Repositories{
		Books:      bookRepo,
		Authors:    authorRepo,
		Categories: categoryRepo,
		Users:      userRepo,
	}
	mirror := func(ctx context.Context) {
		mirrorSeedIntoOrders(ctx, bookRepo, userRepo, ordersStore, logger)
	}
	logger.Warn("repositories configured in memory, data is not persisted")
	return catalogService, userService, orderCore, repos, mirror
}

// mirrorSeedIntoOrders copies the seeded books and users into the orders
// store so in-memory installs can place orders against the sample catalog.
func mirrorSeedIntoOrders(ctx context.Context, books catalogports.BookRepository, users userports.Repository, store *ordersmemory.Store, logger *slog.Logger) {
	seeded, err := books.List(ctx)
	if err != nil {
		logger.Warn("failed to mirror catalog into orders store", slog.String("error", err.Error()))
		return
	}
	for _, book := range seeded {
		store.SeedBook(orderports.BookRef{ID: book.ID, Title: book.Title, Price: book.Price, Stock: book.Stock})
	}
	accounts, err := users.List(ctx)
	if err != nil {
		logger.Warn("failed to mirror users into orders store", slog.String("error", err.Error()))
		return
	}
	for _, user := range accounts {
		store.SeedUser(orderports.Buyer{ID: user.ID, Username: user.Username})
	}
}

func connectPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	return db, func() { platformpostgres.Close(db) }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
