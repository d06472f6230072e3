package commands

import (
	"errors"
	"net/mail"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreatePartnerCommandIsNotConstructed = errors.New(
		"CreatePartnerCommand must be created via NewCreatePartnerCommand constructor",
	)
	ErrPartnerNameIsRequired = errors.New("name is required")
	ErrCapacityIsInvalid     = errors.New("maxHandlingCapacity must be greater than 0")
)

// CreatePartnerCommand represents a request to register a new delivery partner.
// The partner identifier is generated when the command is constructed; the
// partner starts unverified.
type CreatePartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID           kernel.UUID
	name                string
	email               string
	maxHandlingCapacity int
	serviceableZips     []kernel.ZipCode

	guard guard.ConstructorGuard
}

// NewCreatePartnerCommand creates a command to register a delivery partner.
// Validates that the name is non-empty, the email parses, the capacity is
// positive, and at least one serviceable zip code is given.
func NewCreatePartnerCommand(
	name string,
	email string,
	maxHandlingCapacity int,
	serviceableZips []string,
) (CreatePartnerCommand, error) {
	cmd := CreatePartnerCommand{
		partnerID: kernel.NewUUID(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setMaxHandlingCapacity(maxHandlingCapacity),
		cmd.setServiceableZips(serviceableZips),
	); err != nil {
		return CreatePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePartnerCommandIsNotConstructed if validation fails.
func (c CreatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrCreatePartnerCommandIsNotConstructed)
}

// PartnerID returns the generated identifier for the new partner.
func (c CreatePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the partner's name.
func (c CreatePartnerCommand) Name() string {
	return c.name
}

// Email returns the partner's contact email.
func (c CreatePartnerCommand) Email() string {
	return c.email
}

// MaxHandlingCapacity returns the partner's active-shipment capacity.
func (c CreatePartnerCommand) MaxHandlingCapacity() int {
	return c.maxHandlingCapacity
}

// ServiceableZips returns the zip codes the partner covers.
func (c CreatePartnerCommand) ServiceableZips() []kernel.ZipCode {
	return c.serviceableZips
}

func (c *CreatePartnerCommand) setName(name string) error {
	if name == "" {
		return ErrPartnerNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreatePartnerCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}

	c.email = email
	return nil
}

func (c *CreatePartnerCommand) setMaxHandlingCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrCapacityIsInvalid
	}

	c.maxHandlingCapacity = capacity
	return nil
}

func (c *CreatePartnerCommand) setServiceableZips(zips []string) error {
	if len(zips) == 0 {
		return errs.NewValueIsRequiredError("serviceableZips")
	}

	for _, raw := range zips {
		zip, err := kernel.NewZipCode(raw)
		if err != nil {
			return err
		}
		c.serviceableZips = append(c.serviceableZips, zip)
	}
	return nil
}
