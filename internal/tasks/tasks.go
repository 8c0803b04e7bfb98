// Package tasks defines the asynq task types exchanged between the API
// process and the background worker.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"contentai/internal/models"
)

const (
	// TypeUsageRecord carries one billed generation for audit logging.
	TypeUsageRecord = "usage:record"

	// QueueUsage is the asynq queue usage records are enqueued on.
	QueueUsage = "usage"
)

// NewUsageRecordTask builds an asynq task from a usage record.
func NewUsageRecordTask(rec models.UsageRecord) (*asynq.Task, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal usage record: %w", err)
	}
	return asynq.NewTask(TypeUsageRecord, payload, asynq.Queue(QueueUsage)), nil
}

// ParseUsageRecordTask decodes a usage record task payload.
func ParseUsageRecordTask(t *asynq.Task) (models.UsageRecord, error) {
	var rec models.UsageRecord
	if err := json.Unmarshal(t.Payload(), &rec); err != nil {
		return models.UsageRecord{}, fmt.Errorf("unmarshal usage record payload: %w", err)
	}
	return rec, nil
}
