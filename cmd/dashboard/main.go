package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/odyssey-dashboard/internal/app"
	"github.com/odyssey-erp/odyssey-dashboard/internal/dashboard"
	dashboardhttp "github.com/odyssey-erp/odyssey-dashboard/internal/dashboard/http"
	"github.com/odyssey-erp/odyssey-dashboard/internal/observability"
	"github.com/odyssey-erp/odyssey-dashboard/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-dashboard/internal/platform/db"
	"github.com/odyssey-erp/odyssey-dashboard/internal/view"
	"github.com/odyssey-erp/odyssey-dashboard/jobs"
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

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		logger.Error("open dashboard source", slog.String("source", cfg.DashboardSource), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeSource()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	service := dashboard.NewService(source, metrics, cfg.DashboardLoadTimeout)
	dashboardHandler := dashboardhttp.NewHandler(logger, service, templates, nil, cfg.APIRateLimit)

	var jobHandler *jobs.Handler
	if cfg.DashboardSource == dashboard.SourceRedis {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("asynq inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("source", service.SourceName()))
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

// openSource connects the configured payload source and returns its cleanup.
func openSource(ctx context.Context, cfg *app.Config) (dashboard.Source, func(), error) {
	switch cfg.DashboardSource {
	case dashboard.SourcePostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return dashboard.NewPostgresSource(pool), pool.Close, nil
	case dashboard.SourceRedis:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return dashboard.NewSnapshotStore(client), func() { _ = client.Close() }, nil
	case dashboard.SourceStatic:
		return dashboard.NewStaticSource(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.DashboardSource)
	}
}
