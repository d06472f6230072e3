package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
	"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
)

// AdvanceShipmentCommand represents a request to move a shipment forward in
// its delivery lifecycle, for example from "placed" to "in_transit".
// Cancellation is a separate command; "cancelled" is not a valid target here.
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	next        shipment.Status
	description string
	location    *kernel.ZipCode

	guard guard.ConstructorGuard
}

// NewAdvanceShipmentCommand creates a command to advance a shipment's status.
// The target status is given in its string form ("in_transit",
// "out_for_delivery", "delivered"). Description and locationZip are optional;
// an empty locationZip means the event inherits its location from the
// shipment's history.
func NewAdvanceShipmentCommand(
	shipmentID kernel.UUID,
	status string,
	description string,
	locationZip string,
) (AdvanceShipmentCommand, error) {
	cmd := AdvanceShipmentCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setNext(status),
		cmd.setLocation(locationZip),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceShipmentCommandIsNotConstructed if validation fails.
func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to advance.
func (c AdvanceShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Next returns the target lifecycle status.
func (c AdvanceShipmentCommand) Next() shipment.Status {
	return c.next
}

// Description returns the free-text event description, possibly empty.
func (c AdvanceShipmentCommand) Description() string {
	return c.description
}

// Location returns the zip code where the change was recorded,
// or nil when the event location should be inherited.
func (c AdvanceShipmentCommand) Location() *kernel.ZipCode {
	return c.location
}

func (c *AdvanceShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *AdvanceShipmentCommand) setNext(status string) error {
	next, err := shipment.StatusFromString(status)
	if err != nil {
		return err
	}

	c.next = next
	return nil
}

func (c *AdvanceShipmentCommand) setLocation(locationZip string) error {
	if locationZip == "" {
		return nil
	}

	location, err := kernel.NewZipCode(locationZip)
	if err != nil {
		return err
	}

	c.location = &location
	return nil
}
