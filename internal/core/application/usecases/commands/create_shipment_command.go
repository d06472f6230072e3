package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrContentIsRequired = errors.New("content is required")
)

// CreateShipmentCommand represents a request to register a new shipment.
// Encapsulates the package details, destination, and client contact. The
// shipment identifier is generated when the command is constructed.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(sellerID, "ceramic mugs", 2.5,
//	    "90210", "client@example.com", "", []string{"fragile"})
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, dispatcher, offset)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	sellerID    kernel.UUID
	content     string
	weight      kernel.Weight
	destination kernel.ZipCode
	contact     kernel.Contact
	tags        []shipment.Tag

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Raw inputs are converted into their value objects here, so invalid weight,
// zip code, contact, or tags are rejected before the handler runs.
// A fresh shipment ID is generated for the command.
func NewCreateShipmentCommand(
	sellerID kernel.UUID,
	content string,
	weightKg float64,
	destinationZip string,
	contactEmail string,
	contactPhone string,
	tags []string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		shipmentID: kernel.NewUUID(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSellerID(sellerID),
		cmd.setContent(content),
		cmd.setWeight(weightKg),
		cmd.setDestination(destinationZip),
		cmd.setContact(contactEmail, contactPhone),
		cmd.setTags(tags),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateShipmentCommandIsNotConstructed if validation fails.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the generated identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// SellerID returns the identifier of the seller creating the shipment.
func (c CreateShipmentCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Content returns the package content description.
func (c CreateShipmentCommand) Content() string {
	return c.content
}

// Weight returns the package weight.
func (c CreateShipmentCommand) Weight() kernel.Weight {
	return c.weight
}

// Destination returns the delivery zip code.
func (c CreateShipmentCommand) Destination() kernel.ZipCode {
	return c.destination
}

// Contact returns the client's notification contact.
func (c CreateShipmentCommand) Contact() kernel.Contact {
	return c.contact
}

// Tags returns the labels to attach to the shipment.
func (c CreateShipmentCommand) Tags() []shipment.Tag {
	return c.tags
}

func (c *CreateShipmentCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}

	c.sellerID = sellerID
	return nil
}

func (c *CreateShipmentCommand) setContent(content string) error {
	if content == "" {
		return ErrContentIsRequired
	}

	c.content = content
	return nil
}

func (c *CreateShipmentCommand) setWeight(weightKg float64) error {
	weight, err := kernel.NewWeight(weightKg)
	if err != nil {
		return err
	}

	c.weight = weight
	return nil
}

func (c *CreateShipmentCommand) setDestination(destinationZip string) error {
	destination, err := kernel.NewZipCode(destinationZip)
	if err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateShipmentCommand) setContact(email, phone string) error {
	contact, err := kernel.NewContact(email, phone)
	if err != nil {
		return err
	}

	c.contact = contact
	return nil
}

func (c *CreateShipmentCommand) setTags(tags []string) error {
	for _, raw := range tags {
		tag, err := shipment.NewTag(raw)
		if err != nil {
			return err
		}
		c.tags = append(c.tags, tag)
	}
	return nil
}
