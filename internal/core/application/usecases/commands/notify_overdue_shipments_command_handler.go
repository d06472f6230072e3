package commands

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/ports"
)

// NotifyOverdueShipmentsCommandHandler sweeps for overdue shipments.
// A shipment is overdue while it is active and its estimated delivery time
// lies in the past. The sweep only reads state; it never mutates shipments.
type NotifyOverdueShipmentsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewNotifyOverdueShipmentsCommandHandler creates a handler for the overdue sweep.
func NewNotifyOverdueShipmentsCommandHandler(
	uowFactory ShipmentUoWFactory,
	dispatcher ports.NotificationDispatcher,
) NotifyOverdueShipmentsCommandHandler {
	return NotifyOverdueShipmentsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the overdue sweep command and returns the number of
// shipments a notification was dispatched for. Individual dispatch failures
// are skipped; the sweep continues with the remaining shipments.
func (h NotifyOverdueShipmentsCommandHandler) Handle(
	ctx context.Context,
	cmd NotifyOverdueShipmentsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	overdue, err := uow.ShipmentRepository().GetAllOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	notified := 0
	for _, aggregate := range overdue {
		err = h.dispatcher.Dispatch(ctx, ports.Notification{
			ShipmentID: aggregate.ID(),
			Kind:       ports.NotificationShipmentOverdue,
			Recipient:  aggregate.Contact().Email(),
			Message: fmt.Sprintf("your shipment is delayed past its estimated delivery of %s",
				aggregate.EstimatedDelivery().Format(time.RFC3339)),
			OccurredAt: now,
		})
		if err != nil {
			continue
		}
		notified++
	}

	return notified, nil
}
