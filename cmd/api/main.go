package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/localarthub-backend/api/controllers"
	"github.com/angelmondragon/localarthub-backend/api/routes"
	"github.com/angelmondragon/localarthub-backend/internal/catalog"
	"github.com/angelmondragon/localarthub-backend/internal/storefront"
	"github.com/angelmondragon/localarthub-backend/pkg/config"
	"github.com/angelmondragon/localarthub-backend/pkg/db"
	"github.com/angelmondragon/localarthub-backend/pkg/instance"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/metrics"
	"github.com/angelmondragon/localarthub-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := map[string]controllers.Pinger{}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		readiness["redis"] = redisClient
	}

	store, dbClient, err := openStorage(ctx, cfg, logg, redisClient)
	if err != nil {
		logg.Error(ctx, "failed to open storage", err)
		closeResources(logg, redisClient, dbClient)
		os.Exit(1)
	}
	if dbClient != nil {
		readiness["db"] = dbClient
	}

	page, err := catalog.LoadPage(cfg.Catalog.Page)
	if err != nil {
		logg.Error(ctx, "failed to load catalog page", err)
		closeResources(logg, redisClient, dbClient)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := storefront.New(storefront.Params{
		Store:               store,
		Page:                page,
		Logger:              logg,
		Metrics:             metrics.NewStorefrontMetrics(registry),
		ClampDetailQuantity: cfg.Cart.ClampDetailQuantity,
		HomeURL:             cfg.Cart.HomeURL,
		RedirectDelay:       cfg.Cart.RedirectDelay,
	})
	if err != nil {
		logg.Error(ctx, "failed to build storefront", err)
		closeResources(logg, redisClient, dbClient)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"instance":       instance.ID(),
		"storage_driver": cfg.Storage.Driver,
		"catalog_cards":  len(page.Cards),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, app, newSessionStore(cfg.Session), redisClient, readiness, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			closeResources(logg, redisClient, dbClient)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	closeResources(logg, redisClient, dbClient)
	logg.Info(ctx, "api server stopped")
}

func closeResources(logg *logger.Logger, redisClient *redis.Client, dbClient *db.Client) {
	var err error
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	if dbClient != nil {
		err = multierr.Append(err, dbClient.Close())
	}
	if err != nil {
		logg.Error(context.Background(), "error closing resources", err)
	}
}
