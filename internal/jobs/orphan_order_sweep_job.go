package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrphanSweepSchedule runs the sweep at the start of every minute.
const OrphanSweepSchedule = "0 * * * * *"

// OrphanSweeper removes incomplete orders. Implemented by
// commands.SweepOrphanOrdersCommandHandler.
type OrphanSweeper interface {
	Handle(ctx context.Context, cmd commands.SweepOrphanOrdersCommand) (int, error)
}

// OrphanOrderSweepJob periodically deletes orders whose creation was
// interrupted and gives their stock back.
type OrphanOrderSweepJob struct {
	handler OrphanSweeper
	cmd     commands.SweepOrphanOrdersCommand
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOrphanOrderSweepJob(
	handler OrphanSweeper,
	cmd commands.SweepOrphanOrdersCommand,
	logger *slog.Logger,
) *OrphanOrderSweepJob {
	return &OrphanOrderSweepJob{
		handler: handler,
		cmd:     cmd,
		timeout: 50 * time.Second,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "orphan_order_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *OrphanOrderSweepJob) Start() error {
	if _, err := j.cron.AddFunc(OrphanSweepSchedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Orphan order sweep job started",
		"schedule", OrphanSweepSchedule, "gracePeriod", j.cmd.GracePeriod().String())
	return nil
}

// RunOnce performs one sweep and returns the number of orders removed.
func (j *OrphanOrderSweepJob) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	swept, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Orphan order sweep failed", "error", err)
		return 0
	}
	if swept > 0 {
		j.logger.InfoContext(ctx, "Orphan orders removed", "count", swept)
	}
	return swept
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *OrphanOrderSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Orphan order sweep job stopped")
}
