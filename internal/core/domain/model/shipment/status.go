package shipment

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// ErrInvalidTransition is the root cause for all InvalidTransitionError instances.
// Use errors.Is to classify transition failures regardless of the concrete type.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports an attempt to move a shipment between two
// states the lifecycle does not connect. The failed transition leaves the
// shipment unchanged.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair of states.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a shipment.
// It implements a state machine with defined transitions to ensure
// shipments follow the correct delivery workflow.
//
// State transitions:
//
//	Placed ──> InTransit ──> OutForDelivery ──> Delivered
//	   │            │                │
//	   └────────────┴────────────────┴──> Cancelled
//
// Advancing may skip intermediate states (for example Placed directly to
// Delivered), but never moves backwards. Delivered and Cancelled are final.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when a shipment is first created.
	// A delivery partner is already assigned at this point.
	Placed

	// InTransit indicates the shipment left the warehouse and is moving
	// through the delivery network.
	InTransit

	// OutForDelivery indicates the shipment is with the delivery partner
	// on its final leg to the client.
	OutForDelivery

	// Delivered indicates the shipment reached the client.
	// This is a final state; only a review may still be attached.
	Delivered

	// Cancelled indicates the shipment was cancelled before delivery.
	// This is a final state reachable from every state except Delivered.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Placed:         "placed",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:         "placed",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// StatusFromString parses a Status from its persisted string form.
// Returns a ValueIsInvalidError for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Placed, InTransit, OutForDelivery, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, as persisted and exposed
// over the API. Invalid values yield "unknown".
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Advance transitions the status to next, validating that the move is a legal
// forward step in the lifecycle.
//
// Valid transitions:
//   - Placed -> InTransit, OutForDelivery, Delivered
//   - InTransit -> OutForDelivery, Delivered
//   - OutForDelivery -> Delivered
//
// Invalid transitions:
//   - any move to an earlier state or to the same state
//   - any move out of Delivered or Cancelled
//   - moving to Cancelled (cancellation goes through Cancel)
//
// Returns:
//   - (next, nil) on valid transition
//   - (0, *InvalidTransitionError) if the move is not allowed
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() || next == Cancelled || next <= s {
		return 0, NewInvalidTransitionError(s, next)
	}

	return next, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Placed, InTransit, OutForDelivery -> Cancelled
//
// Invalid transitions:
//   - Delivered -> Cancelled (delivered shipments cannot be cancelled)
//   - Cancelled -> Cancelled (already cancelled)
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, *InvalidTransitionError) if cancellation is not allowed
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, NewInvalidTransitionError(s, Cancelled)
	}

	return Cancelled, nil
}
