// Package queries contains read operations for the CQRS architecture.
// Query handlers bypass the domain model and read directly from the database,
// returning flat read models shaped for the API.
package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves a single shipment with its current status,
// assignment, and review.
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query to retrieve one shipment by its identifier.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentQueryIsNotConstructed if validation fails.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to retrieve.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// ReviewResponse represents an attached review in shipment read models.
type ReviewResponse struct {
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// GetShipmentQueryResponse is the read model for a single shipment.
// Review is nil when the client has not reviewed the shipment.
type GetShipmentQueryResponse struct {
	ID                kernel.UUID
	SellerID          kernel.UUID
	PartnerID         kernel.UUID
	Content           string
	WeightKg          float64
	DestinationZip    string
	ContactEmail      string
	ContactPhone      string
	Status            string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	Review            *ReviewResponse
}
