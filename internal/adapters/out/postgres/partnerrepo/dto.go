// Package partnerrepo provides data transfer objects and mapping functions
// for delivery partner persistence. Serviceable zip codes are stored as a
// postgres text array on the partner row itself; partners have no child
// tables.
package partnerrepo

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartnerDTO represents the database structure for persisting delivery
// partner aggregates.
type PartnerDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name                string         `gorm:"type:varchar(255);not null"`
	Email               string         `gorm:"type:varchar(255);not null"`
	Verified            bool           `gorm:"not null"`
	MaxHandlingCapacity int            `gorm:"type:int;not null"`
	ServiceableZips     pq.StringArray `gorm:"type:text[];not null"`
}

// TableName specifies the database table name for delivery partner entities.
// Overrides GORM's default naming convention to use "delivery_partners"
// instead of "partner_dtos".
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a delivery partner aggregate to its database representation.
func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	zips := make(pq.StringArray, 0, len(aggregate.ServiceableZips()))
	for _, zip := range aggregate.ServiceableZips() {
		zips = append(zips, zip.String())
	}

	return PartnerDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		Email:               aggregate.Email(),
		Verified:            aggregate.IsVerified(),
		MaxHandlingCapacity: aggregate.MaxHandlingCapacity(),
		ServiceableZips:     zips,
	}
}

// toDomain converts a database DTO to a delivery partner aggregate.
func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	zips := make([]kernel.ZipCode, 0, len(dto.ServiceableZips))
	for _, raw := range dto.ServiceableZips {
		zip, zipErr := kernel.NewZipCode(raw)
		if zipErr != nil {
			return nil, zipErr
		}
		zips = append(zips, zip)
	}

	return partner.RestoreDeliveryPartner(id, dto.Name, dto.Email,
		dto.Verified, dto.MaxHandlingCapacity, zips)
}
