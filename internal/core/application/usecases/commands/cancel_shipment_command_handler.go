package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"
)

// CancelShipmentCommandHandler handles shipment cancellation.
// Cancellation follows the same transactional shape as advancement: load,
// mutate through the aggregate, persist, notify.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCancelShipmentCommandHandler creates a handler for cancellation operations.
func NewCancelShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	dispatcher ports.NotificationDispatcher,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the cancellation command.
// Returns *shipment.InvalidTransitionError when the shipment is already
// delivered or cancelled; the shipment is left unchanged in that case.
func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	occurredAt := time.Now()
	if err = aggregate.Cancel(cmd.Reason(), occurredAt); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Fire-and-forget: a lost notification never fails the command.
	_ = h.dispatcher.Dispatch(ctx, ports.Notification{
		ShipmentID: aggregate.ID(),
		Kind:       ports.NotificationShipmentCancelled,
		Recipient:  aggregate.Contact().Email(),
		Message:    "your shipment has been cancelled",
		OccurredAt: occurredAt,
	})

	return nil
}
