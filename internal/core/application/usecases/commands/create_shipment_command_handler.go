package commands

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// DefaultDeliveryOffset is the promised delivery window applied to new
// shipments when no other offset is configured.
const DefaultDeliveryOffset = 72 * time.Hour

// CreateShipmentCommandHandler handles the business logic for shipment creation.
// Selects a delivery partner for the destination, creates the shipment in
// "placed" status, and notifies the client.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, dispatcher, commands.DefaultDeliveryOffset)
//	cmd, _ := NewCreateShipmentCommand(sellerID, "ceramic mugs", 2.5,
//	    "90210", "client@example.com", "", nil)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrPartnerNotAvailable) {
//	    // No partner covers the destination right now
//	    return
//	}
type CreateShipmentCommandHandler struct {
	uowFactory     UoWFactory
	dispatcher     ports.NotificationDispatcher
	deliveryOffset time.Duration
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation operations.
// Requires a UoWFactory for transactional persistence across the shipment and
// partner aggregates, and a dispatcher for client notifications. A non-positive
// deliveryOffset falls back to DefaultDeliveryOffset.
func NewCreateShipmentCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	deliveryOffset time.Duration,
) CreateShipmentCommandHandler {
	if deliveryOffset <= 0 {
		deliveryOffset = DefaultDeliveryOffset
	}

	return CreateShipmentCommandHandler{
		uowFactory:     uowFactory,
		dispatcher:     dispatcher,
		deliveryOffset: deliveryOffset,
	}
}

// Handle processes the shipment creation command.
// Loads the partners servicing the destination, selects the least loaded
// eligible one, and persists the new shipment with that partner assigned.
// Returns services.ErrPartnerNotAvailable when no partner can take the
// shipment; in that case nothing is persisted.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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
	partnerRepo := uow.PartnerRepository()

	candidates, err := partnerRepo.GetAllByZipCode(ctx, cmd.Destination())
	if err != nil {
		return err
	}

	activeShipments, err := shipmentRepo.CountActiveByPartner(ctx)
	if err != nil {
		return err
	}

	selected, err := services.NewPartnerSelector().Select(cmd.Destination(), candidates, activeShipments)
	if err != nil {
		return err
	}

	createdAt := time.Now()
	newShipment, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.SellerID(),
		selected.ID(),
		cmd.Content(),
		cmd.Weight(),
		cmd.Destination(),
		cmd.Contact(),
		createdAt,
		createdAt.Add(h.deliveryOffset),
		cmd.Tags(),
	)
	if err != nil {
		return err
	}

	if err = shipmentRepo.Add(ctx, newShipment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Fire-and-forget: a lost notification never fails the command.
	_ = h.dispatcher.Dispatch(ctx, ports.Notification{
		ShipmentID: newShipment.ID(),
		Kind:       ports.NotificationShipmentPlaced,
		Recipient:  newShipment.Contact().Email(),
		Message: fmt.Sprintf("your shipment has been placed, estimated delivery %s",
			newShipment.EstimatedDelivery().Format(time.RFC3339)),
		OccurredAt: createdAt,
	})

	return nil
}
