package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetActiveShipmentsQueryIsNotConstructed = errors.New(
	"GetActiveShipmentsQuery must be created via NewGetActiveShipmentsQuery constructor",
)

// GetActiveShipmentsQuery retrieves all shipments still moving through the
// delivery lifecycle, excluding delivered and cancelled ones.
//
// Example:
//
//	query := NewGetActiveShipmentsQuery()
//	handler := NewGetActiveShipmentsQueryHandler(db)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active shipments: %w", err)
//	}
//
//	fmt.Printf("%d shipments in flight\n", len(shipments))
type GetActiveShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveShipmentsQuery creates a query to retrieve active shipments.
// This is a parameterless query that fetches all non-terminal shipments.
func NewGetActiveShipmentsQuery() GetActiveShipmentsQuery {
	return GetActiveShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveShipmentsQueryIsNotConstructed if validation fails.
func (q GetActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveShipmentsQueryIsNotConstructed)
}

// GetActiveShipmentsQueryResponse represents one active shipment in the
// listing read model.
type GetActiveShipmentsQueryResponse struct {
	ID                kernel.UUID
	PartnerID         kernel.UUID
	Content           string
	DestinationZip    string
	Status            string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}
