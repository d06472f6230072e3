// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipping service.
//
// # Available Jobs
//
// 1. OverdueNotificationJob - Periodically sweeps non-terminal shipments whose
// estimated delivery has passed and dispatches an overdue notification for each.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(notifyOverdueHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The overdue sweep logs failures and keeps running; a failed sweep is retried
// on the next tick. Failed job starts stop any already running jobs.
package jobs
