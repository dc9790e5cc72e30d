package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

type recordingEnqueuer struct {
	tasks  []*asynq.Task
	opts   [][]asynq.Option
	closed bool
}

func (e *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	e.opts = append(e.opts, opts)
	return &asynq.TaskInfo{ID: "t1", Type: task.Type(), Queue: QueueDefault}, nil
}

func (e *recordingEnqueuer) Close() error {
	e.closed = true
	return nil
}

func TestClientEnqueueSnapshotPublish(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	client := NewClientWith(enqueuer)

	info, err := client.EnqueueSnapshotPublish(context.Background(), contract.PageOverview)
	require.NoError(t, err)
	assert.Equal(t, TaskSnapshotPublish, info.Type)

	require.Len(t, enqueuer.tasks, 1)
	var payload SnapshotPublishPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	assert.Equal(t, []contract.Page{contract.PageOverview}, payload.Pages)

	options := map[asynq.OptionType]any{}
	for _, opt := range enqueuer.opts[0] {
		options[opt.Type()] = opt.Value()
	}
	assert.Equal(t, QueueDefault, options[asynq.QueueOpt])
	assert.Equal(t, 3, options[asynq.MaxRetryOpt])

	require.NoError(t, client.Close())
	assert.True(t, enqueuer.closed)
}

func TestClientNotConfigured(t *testing.T) {
	var client *Client
	_, err := client.EnqueueSnapshotPublish(context.Background())
	assert.Error(t, err)
	assert.NoError(t, client.Close())
}
