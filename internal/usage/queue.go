// Package usage enqueues billed-generation records for the background
// worker. The queue is optional: without a configured Redis the API
// serves normally and records are only logged in-process.
package usage

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"contentai/internal/models"
	"contentai/internal/tasks"
)

// Queue is a thin wrapper over the asynq client. A nil *Queue is valid
// and drops records silently.
type Queue struct {
	client *asynq.Client
}

// NewQueue connects to Redis at addr. Returns nil when addr is empty.
func NewQueue(addr, password string, db int) *Queue {
	if addr == "" {
		return nil
	}
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password, DB: db})
	log.Infof("Usage queue connected to redis at %s", addr)
	return &Queue{client: client}
}

// EnqueueUsageRecord submits one record for background processing.
func (q *Queue) EnqueueUsageRecord(ctx context.Context, rec models.UsageRecord) error {
	if q == nil || q.client == nil {
		return nil
	}
	task, err := tasks.NewUsageRecordTask(rec)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue usage record: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (q *Queue) Close() error {
	if q == nil || q.client == nil {
		return nil
	}
	return q.client.Close()
}
