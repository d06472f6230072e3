package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand represents a request to cancel a shipment that has
// not yet reached a terminal state.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a command to cancel a shipment.
// The reason is optional; when empty the cancellation event carries the
// standard wording.
func NewCancelShipmentCommand(shipmentID kernel.UUID, reason string) (CancelShipmentCommand, error) {
	cmd := CancelShipmentCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setShipmentID(shipmentID); err != nil {
		return CancelShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelShipmentCommandIsNotConstructed if validation fails.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to cancel.
func (c CancelShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Reason returns the free-text cancellation reason, possibly empty.
func (c CancelShipmentCommand) Reason() string {
	return c.reason
}

func (c *CancelShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
