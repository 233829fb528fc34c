// Package jobs hosts the Asynq worker and background task definitions.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStatsWarmup rebuilds the dashboard stat cache for every admin.
	TaskStatsWarmup = "stats:warmup"
)

// NewStatsWarmupTask constructs a warmup task. The handler discovers the
// admin set itself, so the task carries no payload.
func NewStatsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskStatsWarmup, nil)
}
