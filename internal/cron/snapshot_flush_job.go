package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/partcustody/pkg/logger"
)

type snapshotSaver interface {
	Save(ctx context.Context) error
}

type SnapshotFlushJobParams struct {
	Logger *logger.Logger
	Saver  snapshotSaver
}

// NewSnapshotFlushJob rewrites the full snapshot, repairing any write an action
// could not persist.
func NewSnapshotFlushJob(params SnapshotFlushJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Saver == nil {
		return nil, fmt.Errorf("custody service required")
	}
	return &snapshotFlushJob{logg: params.Logger, saver: params.Saver}, nil
}

type snapshotFlushJob struct {
	logg  *logger.Logger
	saver snapshotSaver
}

func (j *snapshotFlushJob) Name() string { return "snapshot-flush" }

func (j *snapshotFlushJob) Run(ctx context.Context) error {
	if err := j.saver.Save(ctx); err != nil {
		return fmt.Errorf("snapshot flush: %w", err)
	}
	j.logg.Debug(ctx, "snapshot flushed")
	return nil
}
