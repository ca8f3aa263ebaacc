// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// OutboxRelayJob drains the transactional outbox: every tick it runs
// PublishOutboxCommand, which publishes up to the configured batch of pending
// status-change events and marks them published in the same transaction.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(publishOutboxHandler, jobs.Config{OutboxBatchSize: 100}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed batch is logged and retried on the next tick. Messages published
// before the failure are already marked and are not sent again. Overlapping
// ticks are skipped while a batch is still running.
package jobs
