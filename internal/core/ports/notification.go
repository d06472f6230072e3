package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// Notification kinds published on shipment lifecycle changes.
const (
	NotificationShipmentPlaced    = "shipment.placed"
	NotificationShipmentAdvanced  = "shipment.advanced"
	NotificationShipmentCancelled = "shipment.cancelled"
	NotificationShipmentOverdue   = "shipment.overdue"
)

// Notification is a message about a shipment lifecycle change, addressed
// to the shipment's contact.
type Notification struct {
	ShipmentID kernel.UUID
	Kind       string
	Recipient  string
	Message    string
	OccurredAt time.Time
}

// NotificationDispatcher publishes shipment notifications to interested
// consumers. Dispatch is fire-and-forget from the caller's perspective:
// delivery failures are reported but never affect the business operation
// that produced the notification.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification Notification) error
}
