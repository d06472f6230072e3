package commands

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/ports"
)

// AdvanceShipmentCommandHandler handles forward status transitions.
// Loads the shipment, applies the transition through the aggregate, and
// persists the appended event together with the new status.
//
// Example:
//
//	handler := NewAdvanceShipmentCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewAdvanceShipmentCommand(shipmentID, "in_transit", "", "10001")
//	err := handler.Handle(ctx, cmd)
//	var transitionErr *shipment.InvalidTransitionError
//	if errors.As(err, &transitionErr) {
//	    // Illegal transition, shipment unchanged
//	}
type AdvanceShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewAdvanceShipmentCommandHandler creates a handler for status advancement operations.
func NewAdvanceShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	dispatcher ports.NotificationDispatcher,
) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the status advancement command.
// Domain errors pass through unchanged: errs.ErrObjectNotFound when the
// shipment does not exist, *shipment.InvalidTransitionError when the
// transition is illegal. On an illegal transition the transaction is rolled
// back and the shipment keeps its prior state.
func (h AdvanceShipmentCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentCommand) error {
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
	if err = aggregate.Advance(cmd.Next(), cmd.Description(), cmd.Location(), occurredAt); err != nil {
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
		Kind:       ports.NotificationShipmentAdvanced,
		Recipient:  aggregate.Contact().Email(),
		Message:    fmt.Sprintf("your shipment is now %s", aggregate.Status()),
		OccurredAt: occurredAt,
	})

	return nil
}
