package partner

import (
	"errors"
	"net/mail"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for delivery partner operations.
var (
	// ErrNameIsRequired is returned when attempting to create a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized DeliveryPartner.
	ErrPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner constructor")
)

// DeliveryPartner represents a delivery agent that fulfills shipments.
// It is an aggregate root that manages partner identity, verification state,
// the set of serviceable zip codes, and the soft handling capacity used by
// partner selection.
//
// Business rules:
//   - Partner must have a valid UUID, non-empty name, and parseable email
//   - Handling capacity must be positive
//   - A partner starts unverified; only verified partners receive shipments
//   - A partner services a zip code only if it appears in its serviceable set
type DeliveryPartner struct {
	// id uniquely identifies the partner
	id kernel.UUID
	// name is the human-readable partner name
	name string
	// email is the partner's contact address, also used for verification mail
	email string
	// verified records whether the partner completed verification
	verified bool
	// maxHandlingCapacity is the number of active shipments the partner can carry
	maxHandlingCapacity int
	// serviceableZips is the set of destination zip codes the partner covers
	serviceableZips []kernel.ZipCode
	// guard ensures the partner was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryPartner creates a new, unverified DeliveryPartner.
// This is the only way to create a valid fresh partner instance.
//
// Parameters:
//   - id: Unique identifier for the partner
//   - name: Human-readable name (must be non-empty)
//   - email: Contact email (must be parseable)
//   - maxHandlingCapacity: Active-shipment capacity (must be positive)
//   - serviceableZips: Zip codes the partner covers (at least one)
func NewDeliveryPartner(
	id kernel.UUID,
	name string,
	email string,
	maxHandlingCapacity int,
	serviceableZips []kernel.ZipCode,
) (*DeliveryPartner, error) {
	p := &DeliveryPartner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setEmail(email),
		p.setMaxHandlingCapacity(maxHandlingCapacity),
		p.setServiceableZips(serviceableZips),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreDeliveryPartner reconstructs a DeliveryPartner from persistent storage,
// including its verification state.
func RestoreDeliveryPartner(
	id kernel.UUID,
	name string,
	email string,
	verified bool,
	maxHandlingCapacity int,
	serviceableZips []kernel.ZipCode,
) (*DeliveryPartner, error) {
	p, err := NewDeliveryPartner(id, name, email, maxHandlingCapacity, serviceableZips)
	if err != nil {
		return nil, err
	}

	p.verified = verified
	return p, nil
}

// Validate ensures the DeliveryPartner instance was properly constructed.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by their unique identifiers.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// Email returns the partner's contact email.
func (p *DeliveryPartner) Email() string {
	return p.email
}

// IsVerified reports whether the partner completed verification.
func (p *DeliveryPartner) IsVerified() bool {
	return p.verified
}

// MaxHandlingCapacity returns the partner's active-shipment capacity.
func (p *DeliveryPartner) MaxHandlingCapacity() int {
	return p.maxHandlingCapacity
}

// ServiceableZips returns a copy of the partner's serviceable zip code set.
func (p *DeliveryPartner) ServiceableZips() []kernel.ZipCode {
	zips := make([]kernel.ZipCode, len(p.serviceableZips))
	copy(zips, p.serviceableZips)
	return zips
}

// Verify marks the partner as verified, making it eligible for assignment.
// Verifying an already verified partner is a no-op.
func (p *DeliveryPartner) Verify() {
	p.verified = true
}

// ServesZip reports whether the partner covers the given destination.
func (p *DeliveryPartner) ServesZip(zip kernel.ZipCode) bool {
	for _, z := range p.serviceableZips {
		if z.IsEqual(zip) {
			return true
		}
	}
	return false
}

// CanAccept reports whether the partner has capacity left given its current
// number of active shipments. The capacity is soft: concurrent assignments
// may briefly exceed it, which the selection policy tolerates.
func (p *DeliveryPartner) CanAccept(activeShipments int) bool {
	return activeShipments < p.maxHandlingCapacity
}

func (p *DeliveryPartner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DeliveryPartner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *DeliveryPartner) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	p.email = email
	return nil
}

func (p *DeliveryPartner) setMaxHandlingCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxHandlingCapacity",
			errors.New("capacity must be greater than 0"))
	}
	p.maxHandlingCapacity = capacity
	return nil
}

func (p *DeliveryPartner) setServiceableZips(zips []kernel.ZipCode) error {
	if len(zips) == 0 {
		return errs.NewValueIsRequiredError("serviceableZips")
	}
	for _, z := range zips {
		if err := z.Validate(); err != nil {
			return err
		}
	}
	p.serviceableZips = make([]kernel.ZipCode, len(zips))
	copy(p.serviceableZips, zips)
	return nil
}
