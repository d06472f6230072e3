package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrIssueReviewTokenCommandIsNotConstructed = errors.New(
	"IssueReviewTokenCommand must be created via NewIssueReviewTokenCommand constructor",
)

// IssueReviewTokenCommand represents a request for a single-use review token
// for a delivered shipment.
type IssueReviewTokenCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueReviewTokenCommand creates a command to issue a review token.
func NewIssueReviewTokenCommand(shipmentID kernel.UUID) (IssueReviewTokenCommand, error) {
	cmd := IssueReviewTokenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setShipmentID(shipmentID); err != nil {
		return IssueReviewTokenCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIssueReviewTokenCommandIsNotConstructed if validation fails.
func (c IssueReviewTokenCommand) Validate() error {
	return c.guard.Validate(ErrIssueReviewTokenCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the delivered shipment to review.
func (c IssueReviewTokenCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *IssueReviewTokenCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
