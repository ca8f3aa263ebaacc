package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// Config holds the outbox relay batch size and its cron schedule.
type Config struct {
	OutboxBatchSize     int
	OutboxRelaySchedule string
}

// NewJobManager builds every job without starting it.
//
// Example:
//
//	jm := jobs.NewJobManager(relayer, jobs.Config{
//		OutboxBatchSize:     100,
//		OutboxRelaySchedule: "@every 5s",
//	}, logger)
//	if err := jm.StartAll(); err != nil {
//		return err
//	}
//	defer jm.StopAll()
func NewJobManager(relayer OutboxRelayer, cfg Config, logger *slog.Logger) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayer, cfg.OutboxBatchSize, cfg.OutboxRelaySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
