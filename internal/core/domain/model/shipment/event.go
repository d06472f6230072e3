package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through newEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via its constructor")

// Event is an immutable record of a status change in a shipment's history.
// Events are owned by the Shipment aggregate, appended in strictly increasing
// creation order, and never mutated or deleted.
type Event struct {
	// id is the unique identifier for the event
	id kernel.UUID

	// status is the lifecycle state the shipment entered with this event
	status Status

	// description is free text attached to the transition
	description string

	// location is the zip code where the status change was recorded
	location kernel.ZipCode

	// createdAt is the timezone-aware creation timestamp
	createdAt time.Time

	// isConstructed ensures the event was created via a constructor
	isConstructed bool
}

// newEvent creates an Event for a status transition.
// The shipment aggregate is the only caller; events cannot be created
// independently of their shipment.
func newEvent(
	id kernel.UUID,
	status Status,
	description string,
	location kernel.ZipCode,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		location.Validate(),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("event createdAt")
	}

	if description == "" {
		description = defaultDescription(status, location)
	}

	return &Event{
		id:            id,
		status:        status,
		description:   description,
		location:      location,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistent storage.
// Unlike newEvent it keeps the stored description verbatim and performs
// the same invariant validation.
func RestoreEvent(
	id kernel.UUID,
	status Status,
	description string,
	location kernel.ZipCode,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		location.Validate(),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("event createdAt")
	}

	return &Event{
		id:            id,
		status:        status,
		description:   description,
		location:      location,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// Status returns the lifecycle state recorded by this event.
func (e *Event) Status() Status {
	return e.status
}

// Description returns the free-text description of the transition.
func (e *Event) Description() string {
	return e.description
}

// Location returns the zip code where the status change was recorded.
func (e *Event) Location() kernel.ZipCode {
	return e.location
}

// CreatedAt returns the event's creation timestamp.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// defaultDescription produces the standard wording for a transition when the
// caller supplied none.
func defaultDescription(status Status, location kernel.ZipCode) string {
	switch status {
	case Placed:
		return "assigned delivery partner"
	case InTransit:
		return fmt.Sprintf("scanned at %s", location)
	case OutForDelivery:
		return "shipment out for delivery"
	case Delivered:
		return "successfully delivered"
	case Cancelled:
		return "cancelled by seller"
	default:
		return fmt.Sprintf("status updated to %s", status)
	}
}
