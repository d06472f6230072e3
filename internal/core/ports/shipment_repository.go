// Package ports defines repository and gateway interfaces for the shipping domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Provides methods for storing, retrieving, and querying shipment entities
// with their complete state including events and review.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// The shipment must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate,
	// including newly appended events and an attached review.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	// Returns the complete shipment with its event history and review.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllOverdue retrieves active shipments whose estimated delivery
	// time is earlier than asOf. Terminal shipments are never returned.
	GetAllOverdue(ctx context.Context, asOf time.Time) ([]*shipment.Shipment, error)

	// CountActiveByPartner returns the number of active (non-terminal)
	// shipments currently assigned to each delivery partner.
	// Partners without active shipments are absent from the result.
	CountActiveByPartner(ctx context.Context) (map[kernel.UUID]int, error)
}
