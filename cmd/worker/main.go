package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/odyssey-dashboard/cmd/worker/cli"
	"github.com/odyssey-erp/odyssey-dashboard/internal/app"
	"github.com/odyssey-erp/odyssey-dashboard/internal/dashboard"
	jobmetrics "github.com/odyssey-erp/odyssey-dashboard/internal/jobs"
	"github.com/odyssey-erp/odyssey-dashboard/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-dashboard/internal/platform/db"
	"github.com/odyssey-erp/odyssey-dashboard/jobs"
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

	if len(os.Args) > 1 {
		if err := runCommand(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
			logger.Error("worker command", slog.String("command", os.Args[1]), slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	var upstream dashboard.Source = dashboard.NewStaticSource()
	if cfg.DashboardPublishSource == dashboard.SourcePostgres {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect database", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		upstream = dashboard.NewPostgresSource(pool)
	}

	store := dashboard.NewSnapshotStore(redisClient)
	publishJob := jobs.NewSnapshotPublishJob(upstream, store, logger, jobmetrics.NewMetrics(nil))

	publishTask, err := jobs.NewSnapshotPublishTask()
	if err != nil {
		logger.Error("build publish task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSnapshotPublish, Handler: publishJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.DashboardPublishCron, Task: publishTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.String("upstream", upstream.Name()), slog.String("cron", cfg.DashboardPublishCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

// runCommand handles the one-shot sub-commands: trigger, stats and scheduled.
func runCommand(ctx context.Context, cfg *app.Config, name string, args []string) error {
	jobsCLI := cli.NewJobsCLI(cfg.RedisAddr)
	defer func() { _ = jobsCLI.Close() }()

	switch name {
	case "trigger":
		job := jobs.TaskSnapshotPublish
		if len(args) > 0 {
			job, args = args[0], args[1:]
		}
		info, err := jobsCLI.Trigger(ctx, job, args...)
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
	case "stats":
		stats, err := jobsCLI.InspectQueue(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("queue=%s pending=%d active=%d scheduled=%d retry=%d\n", stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
	case "scheduled":
		tasks, err := jobsCLI.ListScheduled(ctx, 20)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			fmt.Printf("%s %s next=%s\n", task.ID, task.Type, task.NextProcessAt.Format("2006-01-02T15:04:05Z07:00"))
		}
	default:
		return fmt.Errorf("unknown command %q (want trigger, stats or scheduled)", name)
	}
	return nil
}
