package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through the NewShipment or RestoreShipment factory methods.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrInvalidState is the root cause for all InvalidStateError instances.
	// It reports an operation attempted while the shipment is in the wrong
	// lifecycle phase, such as requesting a review token before delivery.
	ErrInvalidState = errors.New("operation not allowed in current shipment state")
)

// InvalidStateError reports an operation attempted on a shipment whose current
// status does not permit it.
type InvalidStateError struct {
	Operation string
	Status    Status
}

// NewInvalidStateError creates an InvalidStateError for the given operation and status.
func NewInvalidStateError(operation string, status Status) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s requires a different status, current is %s",
		ErrInvalidState, e.Operation, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// Shipment represents a trackable delivery order. It is the aggregate root that
// owns the status lifecycle, the append-only event history, the optional review,
// and the tag set.
//
// Shipment follows these invariants:
//   - Must have valid identifiers for itself, its seller, and its delivery partner
//   - Content must be non-empty, weight and destination must be valid value objects
//   - Status always equals the newest event's status, or Placed with no events
//   - Events are append-only and strictly ordered by creation time
//   - At most one review, attachable only once the shipment is Delivered
//   - Terminal shipments (Delivered, Cancelled) accept no further transitions
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// sellerID references the seller who created the shipment
	sellerID kernel.UUID

	// partnerID references the delivery partner assigned at creation
	partnerID kernel.UUID

	// content describes what the package contains
	content string

	// weight is the package weight
	weight kernel.Weight

	// destination is the delivery zip code
	destination kernel.ZipCode

	// contact holds the client's notification details
	contact kernel.Contact

	// status is the current state in the delivery lifecycle
	status Status

	// createdAt is the timezone-aware creation timestamp
	createdAt time.Time

	// estimatedDelivery is computed at creation as a fixed offset from createdAt
	estimatedDelivery time.Time

	// events is the append-only status history, oldest first
	events []*Event

	// review is the client's one-time rating, nil until attached
	review *Review

	// tags is the set of labels attached to the shipment
	tags []Tag

	// isConstructed ensures the shipment was created via a factory method
	isConstructed bool
}

// NewShipment creates a new Shipment in the Placed state.
// This is the only way to create a valid fresh Shipment, ensuring all business
// invariants hold. The delivery partner is assigned at creation time, so
// partnerID is required. No event is appended: Placed is implicit until the
// first transition.
//
// Parameters:
//   - id: Unique identifier for the shipment
//   - sellerID: The seller creating the shipment
//   - partnerID: The delivery partner selected for the destination
//   - content: Description of the package contents (must be non-empty)
//   - weight: Package weight
//   - destination: Delivery zip code
//   - contact: Client notification contact
//   - createdAt: Creation timestamp (timezone-aware)
//   - estimatedDelivery: Promised delivery timestamp (must be after createdAt)
//   - tags: Optional labels
//
// Returns:
//   - *Shipment: The created shipment if all validations pass
//   - error: Validation error if any parameter is invalid
func NewShipment(
	id kernel.UUID,
	sellerID kernel.UUID,
	partnerID kernel.UUID,
	content string,
	weight kernel.Weight,
	destination kernel.ZipCode,
	contact kernel.Contact,
	createdAt time.Time,
	estimatedDelivery time.Time,
	tags []Tag,
) (*Shipment, error) {
	s := &Shipment{
		status:        Placed,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setSellerID(sellerID),
		s.setPartnerID(partnerID),
		s.setContent(content),
		s.setWeight(weight),
		s.setDestination(destination),
		s.setContact(contact),
		s.setTimestamps(createdAt, estimatedDelivery),
	); err != nil {
		return nil, err
	}

	s.tags = append(s.tags, tags...)
	return s, nil
}

// RestoreShipment reconstructs a Shipment aggregate from persistent storage.
// Unlike NewShipment it accepts the persisted status, event history, and
// optional review. The status must be consistent with the newest event
// (or Placed when the history is empty); an inconsistent pair indicates
// corrupted storage and fails validation.
func RestoreShipment(
	id kernel.UUID,
	sellerID kernel.UUID,
	partnerID kernel.UUID,
	content string,
	weight kernel.Weight,
	destination kernel.ZipCode,
	contact kernel.Contact,
	status Status,
	createdAt time.Time,
	estimatedDelivery time.Time,
	events []*Event,
	review *Review,
	tags []Tag,
) (*Shipment, error) {
	s, err := NewShipment(id, sellerID, partnerID, content, weight, destination,
		contact, createdAt, estimatedDelivery, tags)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	for _, event := range events {
		if err = event.Validate(); err != nil {
			return nil, err
		}
	}

	if review != nil {
		if err = review.Validate(); err != nil {
			return nil, err
		}
	}

	expected := Placed
	if len(events) > 0 {
		expected = events[len(events)-1].Status()
	}
	if status != expected {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("status %s is inconsistent with newest event status %s", status, expected))
	}

	s.status = status
	s.events = append(s.events, events...)
	s.review = review
	return s, nil
}

// Validate ensures the Shipment instance was properly constructed through a factory method.
// This prevents bypassing validation by directly instantiating the struct.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// SellerID returns the identifier of the seller who created the shipment.
func (s *Shipment) SellerID() kernel.UUID {
	return s.sellerID
}

// PartnerID returns the identifier of the assigned delivery partner.
func (s *Shipment) PartnerID() kernel.UUID {
	return s.partnerID
}

// Content returns the package content description.
func (s *Shipment) Content() string {
	return s.content
}

// Weight returns the package weight.
func (s *Shipment) Weight() kernel.Weight {
	return s.weight
}

// Destination returns the delivery zip code.
func (s *Shipment) Destination() kernel.ZipCode {
	return s.destination
}

// Contact returns the client's notification contact.
func (s *Shipment) Contact() kernel.Contact {
	return s.contact
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// CreatedAt returns the shipment's creation timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// EstimatedDelivery returns the promised delivery timestamp.
func (s *Shipment) EstimatedDelivery() time.Time {
	return s.estimatedDelivery
}

// Events returns a copy of the event history in creation order, oldest first.
func (s *Shipment) Events() []*Event {
	events := make([]*Event, len(s.events))
	copy(events, s.events)
	return events
}

// Timeline returns a copy of the event history in reverse chronological order,
// newest first. This is a pure read: repeated calls return identical results
// absent intervening writes.
func (s *Shipment) Timeline() []*Event {
	timeline := make([]*Event, len(s.events))
	for i, event := range s.events {
		timeline[len(s.events)-1-i] = event
	}
	return timeline
}

// Review returns the attached review, or nil when none exists.
func (s *Shipment) Review() *Review {
	return s.review
}

// Tags returns a copy of the shipment's tag set.
func (s *Shipment) Tags() []Tag {
	tags := make([]Tag, len(s.tags))
	copy(tags, s.tags)
	return tags
}

// Advance moves the shipment to a later lifecycle state and appends the
// corresponding event.
//
// Business rules enforced:
//   - next must be a legal forward transition from the current status
//     (see Status.Advance); otherwise *InvalidTransitionError is returned
//     and the shipment is left unchanged
//   - the event location defaults to the previous event's location, or the
//     shipment destination when no events exist
//   - an empty description is replaced by the standard wording for next
//
// Parameters:
//   - next: The target status
//   - description: Free text for the event (optional)
//   - location: Zip code where the change was recorded (optional)
//   - occurredAt: Event timestamp; must be timezone-aware
func (s *Shipment) Advance(next Status, description string, location *kernel.ZipCode, occurredAt time.Time) error {
	newStatus, err := s.status.Advance(next)
	if err != nil {
		return err
	}

	event, err := s.buildEvent(newStatus, description, location, occurredAt)
	if err != nil {
		return err
	}

	s.events = append(s.events, event)
	s.status = newStatus
	return nil
}

// Cancel moves the shipment to Cancelled and appends a cancellation event.
// Legal only while the shipment is in Placed, InTransit, or OutForDelivery;
// otherwise *InvalidTransitionError is returned and the shipment is left
// unchanged. The reason becomes the event description when non-empty.
func (s *Shipment) Cancel(reason string, occurredAt time.Time) error {
	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}

	event, err := s.buildEvent(newStatus, reason, nil, occurredAt)
	if err != nil {
		return err
	}

	s.events = append(s.events, event)
	s.status = newStatus
	return nil
}

// AttachReview attaches the client's one-time review to a delivered shipment.
//
// Business rules enforced:
//   - the shipment must be Delivered, otherwise *InvalidStateError
//   - at most one review may ever exist, otherwise *errs.AlreadyExistsError
//   - rating must lie within [RatingMin, RatingMax]
func (s *Shipment) AttachReview(id kernel.UUID, rating int, comment string, createdAt time.Time) error {
	if s.status != Delivered {
		return NewInvalidStateError("attach review", s.status)
	}

	if s.review != nil {
		return errs.NewAlreadyExistsError("review", s.id.String())
	}

	review, err := NewReview(id, rating, comment, createdAt)
	if err != nil {
		return err
	}

	s.review = review
	return nil
}

// lastEventLocation returns the location of the newest event, or the shipment
// destination when the history is empty.
func (s *Shipment) lastEventLocation() kernel.ZipCode {
	if len(s.events) == 0 {
		return s.destination
	}
	return s.events[len(s.events)-1].Location()
}

func (s *Shipment) buildEvent(
	status Status,
	description string,
	location *kernel.ZipCode,
	occurredAt time.Time,
) (*Event, error) {
	eventLocation := s.lastEventLocation()
	if location != nil {
		eventLocation = *location
	}

	return newEvent(kernel.NewUUID(), status, description, eventLocation, occurredAt)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}
	s.sellerID = id
	return nil
}

func (s *Shipment) setPartnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("partnerID", err)
	}
	s.partnerID = id
	return nil
}

func (s *Shipment) setContent(content string) error {
	if content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	s.content = content
	return nil
}

func (s *Shipment) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	s.weight = weight
	return nil
}

func (s *Shipment) setDestination(destination kernel.ZipCode) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	s.destination = destination
	return nil
}

func (s *Shipment) setContact(contact kernel.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	s.contact = contact
	return nil
}

func (s *Shipment) setTimestamps(createdAt, estimatedDelivery time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if !estimatedDelivery.After(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDelivery",
			fmt.Errorf("estimated delivery %s is not after creation %s", estimatedDelivery, createdAt))
	}
	s.createdAt = createdAt
	s.estimatedDelivery = estimatedDelivery
	return nil
}
