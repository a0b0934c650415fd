package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskMirrorRefresh re-reads the full catalog into the offline mirror.
	TaskMirrorRefresh = "catalog:mirror_refresh"
	// TaskLowStockDigest logs the products sitting under the restock threshold.
	TaskLowStockDigest = "catalog:low_stock_digest"
)

// MirrorRefreshPayload carries scheduling metadata.
type MirrorRefreshPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewMirrorRefreshTask constructs an Asynq task for a mirror refresh.
func NewMirrorRefreshTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(MirrorRefreshPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMirrorRefresh, body, asynq.Queue(QueueDefault)), nil
}

// LowStockDigestPayload carries scheduling metadata.
type LowStockDigestPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewLowStockDigestTask constructs an Asynq task for the nightly digest.
func NewLowStockDigestTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LowStockDigestPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockDigest, body, asynq.Queue(QueueDefault)), nil
}
