package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
	"github.com/odyssey-erp/odyssey-dashboard/internal/dashboard"
	jobmetrics "github.com/odyssey-erp/odyssey-dashboard/internal/jobs"
)

func newStore(t *testing.T) (*dashboard.SnapshotStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return dashboard.NewSnapshotStore(client), srv
}

func newJob(source dashboard.Source, store SnapshotPublisher) *SnapshotPublishJob {
	return NewSnapshotPublishJob(source, store, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
}

func TestSnapshotPublishCopiesEveryPage(t *testing.T) {
	store, srv := newStore(t)
	job := newJob(dashboard.NewStaticSource(), store)

	task, err := NewSnapshotPublishTask()
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	for _, page := range contract.Pages() {
		assert.True(t, srv.Exists(dashboard.SnapshotKey(page)), page)

		want, err := dashboard.NewStaticSource().Payload(context.Background(), page)
		require.NoError(t, err)
		got, err := store.Payload(context.Background(), page)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	}
}

func TestSnapshotPublishSelectedPage(t *testing.T) {
	store, srv := newStore(t)
	job := newJob(dashboard.NewStaticSource(), store)

	task, err := NewSnapshotPublishTask(contract.PageInsights)
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	assert.True(t, srv.Exists(dashboard.SnapshotKey(contract.PageInsights)))
	assert.False(t, srv.Exists(dashboard.SnapshotKey(contract.PageOverview)))
}

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }

func (brokenSource) Payload(ctx context.Context, page contract.Page) ([]byte, error) {
	if page == contract.PageOverview {
		return []byte(`{"kpis":[]}`), nil
	}
	return nil, errors.New("connection refused")
}

func TestSnapshotPublishFailsWhenSourceFails(t *testing.T) {
	store, srv := newStore(t)
	job := newJob(brokenSource{}, store)

	task, err := NewSnapshotPublishTask()
	require.NoError(t, err)
	err = job.Handle(context.Background(), task)
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, srv.Exists(dashboard.SnapshotKey(contract.PageOverview)))
}

func TestSnapshotPublishRejectsInvalidPayload(t *testing.T) {
	store, _ := newStore(t)
	job := newJob(brokenSource{}, store)

	task, err := NewSnapshotPublishTask(contract.PageOverview)
	require.NoError(t, err)
	assert.ErrorIs(t, job.Handle(context.Background(), task), contract.ErrInvalidPayload)
}

func TestSnapshotPublishSkipsRetryOnBadTask(t *testing.T) {
	store, _ := newStore(t)
	job := newJob(dashboard.NewStaticSource(), store)

	bad := asynq.NewTask(TaskSnapshotPublish, []byte(`{"pages":`))
	assert.ErrorIs(t, job.Handle(context.Background(), bad), asynq.SkipRetry)

	data, err := json.Marshal(SnapshotPublishPayload{Pages: []contract.Page{"billing"}})
	require.NoError(t, err)
	unknown := asynq.NewTask(TaskSnapshotPublish, data)
	assert.ErrorIs(t, job.Handle(context.Background(), unknown), asynq.SkipRetry)
}

func TestSnapshotPublishNotConfigured(t *testing.T) {
	var job *SnapshotPublishJob
	task, err := NewSnapshotPublishTask()
	require.NoError(t, err)
	assert.Error(t, job.Handle(context.Background(), task))
}
