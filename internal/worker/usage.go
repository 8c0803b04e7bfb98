// Package worker holds the asynq task handlers run by the background
// worker process.
package worker

import (
	"context"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"contentai/internal/tasks"
)

// RegisterHandlers wires every task handler onto mux.
func RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypeUsageRecord, HandleUsageRecord)
}

// HandleUsageRecord writes one billed generation to the structured
// audit log. Malformed payloads are skipped without retry.
func HandleUsageRecord(ctx context.Context, t *asynq.Task) error {
	rec, err := tasks.ParseUsageRecordTask(t)
	if err != nil {
		log.Errorf("Skipping malformed usage record: %v", err)
		return nil
	}

	log.WithFields(log.Fields{
		"client_key":   rec.ClientKey,
		"tokens":       rec.Tokens,
		"content_type": rec.ContentType,
		"model":        rec.Model,
		"recorded_at":  rec.RecordedAt,
	}).Info("Usage recorded")
	return nil
}
