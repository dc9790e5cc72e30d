package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSnapshotPublish copies upstream dashboard payloads into the snapshot store.
	TaskSnapshotPublish = "dashboard:snapshot:publish"
)

// SnapshotPublishPayload lists the pages to publish. An empty list means every page.
type SnapshotPublishPayload struct {
	Pages []contract.Page `json:"pages,omitempty"`
}

// NewSnapshotPublishTask constructs an Asynq task.
func NewSnapshotPublishTask(pages ...contract.Page) (*asynq.Task, error) {
	data, err := json.Marshal(SnapshotPublishPayload{Pages: pages})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotPublish, data), nil
}
