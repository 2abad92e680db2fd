package jobs

import (
	"fmt"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orphanSweepJob *OrphanOrderSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	sweeper OrphanSweeper,
	sweepCmd commands.SweepOrphanOrdersCommand,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orphanSweepJob: NewOrphanOrderSweepJob(sweeper, sweepCmd, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orphanSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start orphan order sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orphanSweepJob.Stop()
}
