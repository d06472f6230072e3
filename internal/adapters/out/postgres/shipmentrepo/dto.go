// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, converting between domain entities and their relational
// representation.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. Events, the review, and tags live in child tables linked by
// foreign keys so that the whole aggregate loads and saves as one unit.
type ShipmentDTO struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	SellerID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	PartnerID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Content           string      `gorm:"type:varchar(255);not null"`
	WeightKg          float64     `gorm:"type:numeric(8,3);not null"`
	DestinationZip    string      `gorm:"type:varchar(16);not null"`
	ContactEmail      string      `gorm:"type:varchar(255);not null"`
	ContactPhone      string      `gorm:"type:varchar(32)"`
	Status            string      `gorm:"type:varchar(32);not null;index"`
	CreatedAt         time.Time   `gorm:"not null"`
	EstimatedDelivery time.Time   `gorm:"not null;index"`
	Events            []EventDTO  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Review            *ReviewDTO  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Tags              []TagDTO    `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments" instead of "shipment_dtos".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// EventDTO represents one row of a shipment's status history.
// Rows are append-only; the timeline reads them back ordered by creation time.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(32);not null"`
	Description string    `gorm:"type:varchar(255);not null"`
	LocationZip string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for shipment event entities.
func (EventDTO) TableName() string {
	return "shipment_events"
}

// ReviewDTO represents the database structure for persisting reviews.
// The unique index on ShipmentID backs the one-review-per-shipment invariant
// at the storage level.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Rating     int       `gorm:"type:smallint;not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for review entities.
func (ReviewDTO) TableName() string {
	return "reviews"
}

// TagDTO represents one label attached to a shipment.
type TagDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label      string    `gorm:"type:varchar(40);primaryKey"`
}

// TableName specifies the database table name for shipment tag entities.
func (TagDTO) TableName() string {
	return "shipment_tags"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps the aggregate root plus its events, optional review, and tags.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()

	events := make([]EventDTO, 0, len(aggregate.Events()))
	for _, event := range aggregate.Events() {
		events = append(events, EventDTO{
			ID:          event.ID().Bytes(),
			ShipmentID:  shipmentID,
			Status:      event.Status().String(),
			Description: event.Description(),
			LocationZip: event.Location().String(),
			CreatedAt:   event.CreatedAt(),
		})
	}

	var review *ReviewDTO
	if aggregate.Review() != nil {
		review = &ReviewDTO{
			ID:         aggregate.Review().ID().Bytes(),
			ShipmentID: shipmentID,
			Rating:     aggregate.Review().Rating(),
			Comment:    aggregate.Review().Comment(),
			CreatedAt:  aggregate.Review().CreatedAt(),
		}
	}

	tags := make([]TagDTO, 0, len(aggregate.Tags()))
	for _, tag := range aggregate.Tags() {
		tags = append(tags, TagDTO{
			ShipmentID: shipmentID,
			Label:      tag.Label(),
		})
	}

	return ShipmentDTO{
		ID:                shipmentID,
		SellerID:          aggregate.SellerID().Bytes(),
		PartnerID:         aggregate.PartnerID().Bytes(),
		Content:           aggregate.Content(),
		WeightKg:          aggregate.Weight().Kilograms(),
		DestinationZip:    aggregate.Destination().String(),
		ContactEmail:      aggregate.Contact().Email(),
		ContactPhone:      aggregate.Contact().Phone(),
		Status:            aggregate.Status().String(),
		CreatedAt:         aggregate.CreatedAt(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		Events:            events,
		Review:            review,
		Tags:              tags,
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including its event history, review,
// and tags using RestoreShipment. Events must already be ordered by creation
// time so the persisted status matches the newest event.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightKg)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewZipCode(dto.DestinationZip)
	if err != nil {
		return nil, err
	}

	contact, err := kernel.NewContact(dto.ContactEmail, dto.ContactPhone)
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	events := make([]*shipment.Event, 0, len(dto.Events))
	for _, eventDto := range dto.Events {
		event, eventErr := eventToDomain(eventDto)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	var review *shipment.Review
	if dto.Review != nil {
		reviewID, reviewErr := kernel.UUIDFromBytes(dto.Review.ID[:])
		if reviewErr != nil {
			return nil, reviewErr
		}
		review, reviewErr = shipment.RestoreReview(
			reviewID, dto.Review.Rating, dto.Review.Comment, dto.Review.CreatedAt)
		if reviewErr != nil {
			return nil, reviewErr
		}
	}

	tags := make([]shipment.Tag, 0, len(dto.Tags))
	for _, tagDto := range dto.Tags {
		tag, tagErr := shipment.NewTag(tagDto.Label)
		if tagErr != nil {
			return nil, tagErr
		}
		tags = append(tags, tag)
	}

	return shipment.RestoreShipment(id, sellerID, partnerID, dto.Content,
		weight, destination, contact, status, dto.CreatedAt,
		dto.EstimatedDelivery, events, review, tags)
}

// eventToDomain converts an event DTO to its domain entity.
func eventToDomain(dto EventDTO) (*shipment.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewZipCode(dto.LocationZip)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreEvent(id, status, dto.Description, location, dto.CreatedAt)
}
