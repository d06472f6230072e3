package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentTimelineQueryIsNotConstructed = errors.New(
	"GetShipmentTimelineQuery must be created via NewGetShipmentTimelineQuery constructor",
)

// GetShipmentTimelineQuery retrieves a shipment's event history in reverse
// chronological order, newest first.
type GetShipmentTimelineQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentTimelineQuery creates a query to retrieve a shipment's timeline.
func NewGetShipmentTimelineQuery(shipmentID kernel.UUID) (GetShipmentTimelineQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentTimelineQuery{}, err
	}

	return GetShipmentTimelineQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentTimelineQueryIsNotConstructed if validation fails.
func (q GetShipmentTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTimelineQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment whose timeline to retrieve.
func (q GetShipmentTimelineQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentTimelineQueryResponse represents one entry in a shipment's
// event history.
type GetShipmentTimelineQueryResponse struct {
	ID          kernel.UUID
	Status      string
	Description string
	LocationZip string
	CreatedAt   time.Time
}
