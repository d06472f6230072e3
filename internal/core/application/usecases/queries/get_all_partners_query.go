package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetAllPartnersQueryIsNotConstructed = errors.New(
	"GetAllPartnersQuery must be created via NewGetAllPartnersQuery constructor",
)

// GetAllPartnersQuery retrieves every registered delivery partner together
// with its current active shipment load.
type GetAllPartnersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllPartnersQuery creates a query to retrieve all delivery partners.
func NewGetAllPartnersQuery() GetAllPartnersQuery {
	return GetAllPartnersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllPartnersQueryIsNotConstructed if validation fails.
func (q GetAllPartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllPartnersQueryIsNotConstructed)
}

// GetAllPartnersQueryResponse represents one delivery partner in the
// listing read model.
type GetAllPartnersQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Email               string
	Verified            bool
	MaxHandlingCapacity int
	ServiceableZips     []string
	ActiveShipments     int
}
