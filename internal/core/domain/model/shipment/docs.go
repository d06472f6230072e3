// Package shipment contains the Shipment aggregate and its owned entities.
//
// The aggregate root is Shipment, which owns:
//   - the Status state machine governing the delivery lifecycle
//   - the append-only Event history (the timeline, read newest-first)
//   - an optional Review, attachable exactly once after delivery
//   - a set of Tag labels
//
// Status always equals the status of the most recent Event, or Placed when no
// events exist: creating a shipment appends no event, every later transition
// appends exactly one.
package shipment
