package kernel

import (
	"net/mail"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when attempting to use an improperly initialized Contact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError(
	"contact must be created via NewContact constructor")

// Contact holds the client notification details attached to a shipment.
// Email is required; phone is optional and empty when the client
// provided none. Contact is an immutable value object.
type Contact struct { //nolint:recvcheck //using for validation
	email string
	phone string
	guard guard.ConstructorGuard
}

// NewContact creates a Contact from an email address and an optional phone number.
// The email must be a parseable address; the phone is stored as provided.
func NewContact(email string, phone string) (Contact, error) {
	if email == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact email")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return Contact{}, errs.NewValueIsInvalidErrorWithCause("contact email", err)
	}

	return Contact{
		email: email,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Email returns the client's email address.
func (c Contact) Email() string {
	return c.email
}

// Phone returns the client's phone number, or an empty string when none was provided.
func (c Contact) Phone() string {
	return c.phone
}

// HasPhone reports whether a phone number was provided.
func (c Contact) HasPhone() bool {
	return c.phone != ""
}

// Validate ensures the Contact was created via NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}
