package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
	"github.com/odyssey-erp/odyssey-dashboard/internal/dashboard"
	jobmetrics "github.com/odyssey-erp/odyssey-dashboard/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// SnapshotPublisher stores a validated payload as the latest snapshot of a page.
type SnapshotPublisher interface {
	Publish(ctx context.Context, page contract.Page, payload []byte) (dashboard.Envelope, error)
}

// SnapshotPublishJob copies the latest payloads from an upstream source into
// the snapshot store.
type SnapshotPublishJob struct {
	Source  dashboard.Source
	Store   SnapshotPublisher
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	Timeout time.Duration
}

// NewSnapshotPublishJob wires dependencies for the publish handler.
func NewSnapshotPublishJob(source dashboard.Source, store SnapshotPublisher, logger *slog.Logger, metrics *jobmetrics.Metrics) *SnapshotPublishJob {
	return &SnapshotPublishJob{
		Source:  source,
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
		Timeout: 20 * time.Second,
	}
}

// Handle processes snapshot publish tasks.
func (j *SnapshotPublishJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Source == nil || j.Store == nil {
		return errors.New("snapshot publish: handler not configured")
	}
	var payload SnapshotPublishPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("snapshot publish: decode payload: %v: %w", err, asynq.SkipRetry)
	}
	pages := payload.Pages
	if len(pages) == 0 {
		pages = contract.Pages()
	}
	for _, page := range pages {
		if !page.Valid() {
			return fmt.Errorf("snapshot publish: unknown page %q: %w", page, asynq.SkipRetry)
		}
	}

	tracker := j.metrics().Track(TaskSnapshotPublish)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("source", j.Source.Name()))
	start := time.Now()

	raws, err := j.load(ctx, pages)
	if err != nil {
		resultErr = err
		logger.Error("load snapshots", slog.Any("error", err))
		return resultErr
	}
	for i, page := range pages {
		env, err := j.Store.Publish(ctx, page, raws[i])
		if err != nil {
			resultErr = err
			logger.Error("publish snapshot", slog.String("page", string(page)), slog.Any("error", err))
			return resultErr
		}
		j.metrics().AddPublished(string(page))
		logger.Info("published snapshot", slog.String("page", string(page)), slog.String("id", env.ID))
	}

	logger.Info("completed snapshot publish", slog.Int("pages", len(pages)), slog.Duration("duration", time.Since(start)))
	return resultErr
}

// load reads every page concurrently; the first failure cancels the rest.
func (j *SnapshotPublishJob) load(ctx context.Context, pages []contract.Page) ([][]byte, error) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raws := make([][]byte, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			raw, err := j.Source.Payload(gctx, page)
			if err != nil {
				return fmt.Errorf("snapshot publish: load %s: %w", page, err)
			}
			raws[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raws, nil
}

func (j *SnapshotPublishJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskSnapshotPublish))
	}
	return slog.Default().With(slog.String("job", TaskSnapshotPublish))
}

func (j *SnapshotPublishJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
