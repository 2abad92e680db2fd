// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrphanOrderSweepJob - Runs every minute to delete orders whose creation was
// interrupted before every item was written, restoring the stock they took
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, sweepCmd, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "0 * * * * *". A sweep still running when
// the next one is due causes that tick to be skipped. Only orders older than the
// grace period are touched, so creations in progress are never swept.
//
// # Error Handling
//
// A failing sweep is logged and retried on the next tick. A single order that
// cannot be cleaned up is logged by the handler and left for the next run.
package jobs
