package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// overdueSweepSchedule runs the sweep at the top of every hour.
const overdueSweepSchedule = "0 0 * * * *"

// OverdueNotificationJob periodically notifies clients about shipments whose
// estimated delivery has passed without the shipment reaching a terminal
// state. Shipments stay overdue (and keep being reported) until they are
// delivered or cancelled.
type OverdueNotificationJob struct {
	handler commands.NotifyOverdueShipmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueNotificationJob creates a job that sweeps overdue shipments on an
// hourly schedule.
func NewOverdueNotificationJob(
	handler commands.NotifyOverdueShipmentsCommandHandler,
	logger *slog.Logger,
) *OverdueNotificationJob {
	return &OverdueNotificationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_notification_job"),
	}
}

// Start begins the overdue notification job.
func (j *OverdueNotificationJob) Start() error {
	_, err := j.cron.AddFunc(overdueSweepSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewNotifyOverdueShipmentsCommand()

		notified, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue notification sweep failed", "error", err)
			return
		}

		if notified > 0 {
			j.logger.InfoContext(ctx, "Overdue notification sweep completed", "notified", notified)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue notification job started (running hourly)")
	return nil
}

// Stop stops the overdue notification job.
func (j *OverdueNotificationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue notification job stopped")
}
