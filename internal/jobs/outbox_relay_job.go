package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every second.
const DefaultOutboxRelaySchedule = "* * * * * *"

// OutboxRelayer publishes one batch of pending outbox messages.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error)
}

// OutboxRelayJob periodically drains the outbox to the event publisher.
type OutboxRelayJob struct {
	handler   OutboxRelayer
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob uses a six-field cron schedule. An empty schedule falls
// back to DefaultOutboxRelaySchedule.
func NewOutboxRelayJob(handler OutboxRelayer, batchSize int, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start validates the batch size and schedule, then begins relaying.
func (j *OutboxRelayJob) Start() error {
	if _, err := commands.NewPublishOutboxCommand(j.batchSize); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule,
		"batch_size", j.batchSize)
	return nil
}

// RunOnce relays a single batch and returns how many messages went out.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		return 0, err
	}

	published, err := j.handler.Handle(ctx, cmd)
	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", published)
	}
	return published, err
}

// Stop waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
