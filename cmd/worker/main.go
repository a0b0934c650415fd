package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mostrador-pos/mostrador-pos/internal/analytics"
	"github.com/mostrador-pos/mostrador-pos/internal/app"
	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
	"github.com/mostrador-pos/mostrador-pos/internal/masterdata/brands"
	"github.com/mostrador-pos/mostrador-pos/internal/masterdata/categories"
	"github.com/mostrador-pos/mostrador-pos/internal/platform/cache"
	"github.com/mostrador-pos/mostrador-pos/internal/platform/db"
	"github.com/mostrador-pos/mostrador-pos/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

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

	refreshTask, err := jobs.NewMirrorRefreshTask(time.Now())
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}
	digestTask, err := jobs.NewLowStockDigestTask(time.Now())
	if err != nil {
		logger.Error("build digest task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskMirrorRefresh, Handler: jobs.NewMirrorRefreshHandler(catalogService, logger)},
			{Type: jobs.TaskLowStockDigest, Handler: jobs.NewLowStockDigestHandler(catalogService, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/15 * * * *", Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 1 * * *", Task: digestTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
