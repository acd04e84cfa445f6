package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/partcustody/internal/custody"
	"github.com/angelmondragon/partcustody/pkg/logger"
)

type outboxSyncer interface {
	Summary() custody.Summary
	Sync(ctx context.Context) custody.SyncResult
}

type OutboxSyncJobParams struct {
	Logger *logger.Logger
	Syncer outboxSyncer
}

// NewOutboxSyncJob marks pending events and issues as uploaded on a schedule.
func NewOutboxSyncJob(params OutboxSyncJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Syncer == nil {
		return nil, fmt.Errorf("custody service required")
	}
	return &outboxSyncJob{logg: params.Logger, syncer: params.Syncer}, nil
}

type outboxSyncJob struct {
	logg   *logger.Logger
	syncer outboxSyncer
}

func (j *outboxSyncJob) Name() string { return "outbox-sync" }

func (j *outboxSyncJob) Run(ctx context.Context) error {
	summary := j.syncer.Summary()
	if summary.PendingEvents == 0 && summary.PendingIssues == 0 {
		return nil
	}
	result := j.syncer.Sync(ctx)
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"events_synced": result.Events,
		"issues_synced": result.Issues,
		"persisted":     result.Persisted,
	})
	if !result.Persisted {
		return fmt.Errorf("outbox sync: snapshot not persisted")
	}
	j.logg.Info(logCtx, "outbox auto-sync complete")
	return nil
}
