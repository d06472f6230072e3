package services

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/partner"
)

// ErrPartnerNotAvailable is returned when no suitable delivery partner exists
// for a shipment's destination. This occurs when no candidates are provided,
// none of them are verified, none service the destination zip code, or all
// eligible partners are at capacity.
var ErrPartnerNotAvailable = errors.New("delivery partner not available")

// PartnerSelector is a domain service responsible for choosing the delivery
// partner that will carry a shipment to its destination.
//
// Key responsibilities:
//   - Filtering candidates by verification, coverage, and capacity
//   - Selecting the least loaded eligible partner
//   - Producing a deterministic choice for equal loads
//
// Business rules:
//   - Only verified partners are eligible
//   - A partner must service the destination zip code
//   - A partner at or above its handling capacity is skipped
//   - Ties on load are broken by the lexicographically smallest partner ID
type PartnerSelector struct{}

// NewPartnerSelector creates a new PartnerSelector instance.
func NewPartnerSelector() PartnerSelector {
	return PartnerSelector{}
}

// Select picks the best delivery partner for a shipment to the given
// destination.
//
// Parameters:
//   - destination: The shipment's destination zip code
//   - candidates: Slice of partners to consider
//   - activeShipments: Current number of active shipments per partner ID
//
// Returns:
//   - *partner.DeliveryPartner: The chosen partner
//   - error: ErrPartnerNotAvailable if no eligible partner exists, or
//     validation errors for improperly constructed inputs
//
// Selection algorithm:
//   - Validates the destination and each candidate
//   - Keeps verified partners that service the destination with spare capacity
//   - Chooses the partner carrying the fewest active shipments
//   - Breaks ties by the lexicographically smallest partner ID
//
// Partners missing from activeShipments are treated as carrying no shipments.
func (s PartnerSelector) Select(
	destination kernel.ZipCode,
	candidates []*partner.DeliveryPartner,
	activeShipments map[kernel.UUID]int,
) (*partner.DeliveryPartner, error) {
	if err := destination.Validate(); err != nil {
		return nil, err
	}

	var (
		best     *partner.DeliveryPartner
		bestLoad int
	)

	for _, p := range candidates {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if !p.IsVerified() || !p.ServesZip(destination) {
			continue
		}

		load := activeShipments[p.ID()]
		if !p.CanAccept(load) {
			continue
		}

		if best == nil || load < bestLoad ||
			(load == bestLoad && p.ID().String() < best.ID().String()) {
			best = p
			bestLoad = load
		}
	}

	if best == nil {
		return nil, ErrPartnerNotAvailable
	}

	return best, nil
}
