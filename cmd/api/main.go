package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/ballonsurprise/backend/api/routes"
	cartsvc "github.com/ballonsurprise/backend/internal/cart"
	"github.com/ballonsurprise/backend/internal/catalog"
	checkoutsvc "github.com/ballonsurprise/backend/internal/checkout"
	"github.com/ballonsurprise/backend/internal/identity"
	"github.com/ballonsurprise/backend/internal/orders"
	"github.com/ballonsurprise/backend/internal/users"
	"github.com/ballonsurprise/backend/pkg/auth/session"
	"github.com/ballonsurprise/backend/pkg/config"
	"github.com/ballonsurprise/backend/pkg/db"
	"github.com/ballonsurprise/backend/pkg/logger"
	"github.com/ballonsurprise/backend/pkg/metrics"
	"github.com/ballonsurprise/backend/pkg/migrate"
	"github.com/ballonsurprise/backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogService := catalog.NewService()

	slotStore, err := identity.NewRedisSlotStore(redisClient, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity slot store", err)
		os.Exit(1)
	}

	identityService, err := identity.NewService(identity.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SlotStore:      slotStore,
		SessionManager: sessionManager,
		Providers:      identityProviders(cfg.Providers),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	cartRepo, err := cartsvc.NewRedisRepository(redisClient, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart repository", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartRepo, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		dbClient,
		cartService,
		checkoutsvc.NewSimulatedGateway(logg),
		checkoutsvc.NewSMSLogNotifier(cfg.SMS, logg),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Session:     sessionManager,
			Identity:    identityService,
			Catalog:     catalogService,
			Cart:        cartService,
			Checkout:    checkoutService,
			Orders:      orders.NewRepository(dbClient.DB()),
			HTTPMetrics: httpMetrics,
			Gatherer:    registry,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	closeErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "error during shutdown", closeErr)
		os.Exit(1)
	}

	logg.Info(ctx, "api server stopped")
}

func identityProviders(cfg config.ProvidersConfig) []identity.Provider {
	providers := make([]identity.Provider, 0, 2)
	if cfg.GoogleClientID != "" {
		providers = append(providers, identity.NewGoogleProvider(cfg))
	}
	if cfg.FacebookClientID != "" {
		providers = append(providers, identity.NewFacebookProvider(cfg))
	}
	return providers
}
