package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner aggregates.
type PartnerRepository interface {
	// Add persists a new delivery partner aggregate to storage.
	// The partner must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing delivery partner aggregate,
	// such as its verification state.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a delivery partner aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetAllByZipCode retrieves all delivery partners that service the given
	// destination zip code, regardless of verification state. The caller is
	// responsible for filtering by eligibility.
	GetAllByZipCode(ctx context.Context, zip kernel.ZipCode) ([]*partner.DeliveryPartner, error)
}
