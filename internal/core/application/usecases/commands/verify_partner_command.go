package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrVerifyPartnerCommandIsNotConstructed = errors.New(
	"VerifyPartnerCommand must be created via NewVerifyPartnerCommand constructor",
)

// VerifyPartnerCommand represents a request to mark a delivery partner as
// verified, making it eligible for shipment assignment.
type VerifyPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewVerifyPartnerCommand creates a command to verify a delivery partner.
func NewVerifyPartnerCommand(partnerID kernel.UUID) (VerifyPartnerCommand, error) {
	cmd := VerifyPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return VerifyPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyPartnerCommandIsNotConstructed if validation fails.
func (c VerifyPartnerCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPartnerCommandIsNotConstructed)
}

// PartnerID returns the identifier of the partner to verify.
func (c VerifyPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *VerifyPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
