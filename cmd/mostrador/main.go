package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mostrador-pos/mostrador-pos/internal/analytics"
	"github.com/mostrador-pos/mostrador-pos/internal/app"
	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
	"github.com/mostrador-pos/mostrador-pos/internal/export"
	"github.com/mostrador-pos/mostrador-pos/internal/masterdata/brands"
	"github.com/mostrador-pos/mostrador-pos/internal/masterdata/categories"
	"github.com/mostrador-pos/mostrador-pos/internal/observability"
	"github.com/mostrador-pos/mostrador-pos/internal/platform/cache"
	"github.com/mostrador-pos/mostrador-pos/internal/platform/db"
	"github.com/mostrador-pos/mostrador-pos/internal/quotes"
	"github.com/mostrador-pos/mostrador-pos/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("configure postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("postgres unreachable, serving from mirror until it returns", slog.Any("error", err))
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	categoriesService := categories.NewService(categories.NewRepository(pool))
	brandsService := brands.NewService(brands.NewRepository(pool))

	analyticsCache := analytics.NewCache(redisClient, cfg.CacheTTL)
	mirror := catalog.NewMirror(redisClient, cfg.MirrorKey)
	catalogService := catalog.NewService(
		catalog.NewRepository(pool),
		mirror,
		categoriesService,
		brandsService,
		analyticsCache,
		logger,
	)
	catalogService.SetFallbackCounter(metrics)
	catalogHandler := catalog.NewHandler(logger, catalogService)
	categoriesHandler := categories.NewHandler(logger, categoriesService)

	analyticsService := analytics.NewService(catalogService, analyticsCache)
	analyticsHandler := analytics.NewHandler(logger, analyticsService)

	pdfExporter, err := export.NewPDFExporter(cfg.GotenbergURL, http.DefaultClient)
	if err != nil {
		logger.Error("init pdf exporter", slog.Any("error", err))
		os.Exit(1)
	}

	quotesService := quotes.NewService(quotes.NewRepository(pool), catalogService, logger)
	quotesHandler := quotes.NewHandler(logger, quotesService, quotes.NewDraftStore(), pdfExporter)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		CatalogHandler:    catalogHandler,
		CategoriesHandler: categoriesHandler,
		AnalyticsHandler:  analyticsHandler,
		QuotesHandler:     quotesHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	go func() {
		if err := analyticsCache.ListenForInvalidation(ctx, ""); err != nil && ctx.Err() == nil {
			logger.Warn("cache invalidation listener", slog.Any("error", err))
		}
	}()

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
