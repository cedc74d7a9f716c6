package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appapi "github.com/bookworks/bookstore-api/internal/app/api"
	ordersmemory "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/bookworks/bookstore-api/internal/domains/orders/application"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"
	"github.com/bookworks/bookstore-api/internal/platform/migrations"
	platformobservability "github.com/bookworks/bookstore-api/internal/platform/observability"
	platformpostgres "github.com/bookworks/bookstore-api/internal/platform/postgres"
	orderactivities "github.com/bookworks/bookstore-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/bookworks/bookstore-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "bookstore-worker"
	cfg, err := appapi.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderService, cleanupRepo := buildOrderService(ctx, cfg.PostgresDSN, logger, instruments)
	defer cleanupRepo()
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderService(ctx context.Context, dsn string, logger *slog.Logger, instruments *platformobservability.Instruments) (orderports.Service, func()) {
	var core *orderapp.Service
	cleanup := func() {}
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, worker using in-memory order store")
		store := ordersmemory.NewStore()
		core = orderapp.NewService(store, store.Users(), store, store)
	} else {
		db, err := platformpostgres.Connect(ctx, dsn)
		if err != nil {
			logger.Error("worker failed to connect to postgres", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := migrations.Run(db); err != nil {
			logger.Error("worker failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store := orderspostgres.NewStore(db)
		core = orderapp.NewService(store, store.Users(), store, store)
		cleanup = func() { platformpostgres.Close(db) }
		logger.Info("worker order store configured with postgres")
	}
	service := ordersobs.New(
		core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return service, cleanup
}
