package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		if isReviewConflict(result.Error) {
			return errs.NewAlreadyExistsErrorWithCause("review", aggregate.ID().String(), result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID with its full event history, review, and tags.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Events", eventOrder).
		Preload("Review").
		Preload("Tags").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOverdue retrieves all non-terminal shipments whose estimated delivery
// lies strictly before asOf. Shipments already delivered or cancelled are
// never overdue.
func (r *GormShipmentRepository) GetAllOverdue(ctx context.Context, asOf time.Time) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Events", eventOrder).
		Preload("Review").
		Preload("Tags").
		Where("status NOT IN (?, ?)", shipment.Delivered.String(), shipment.Cancelled.String()).
		Where("estimated_delivery < ?", asOf).
		Order("estimated_delivery, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// CountActiveByPartner returns the number of non-terminal shipments currently
// assigned to each delivery partner. Partners without active shipments are
// absent from the map.
func (r *GormShipmentRepository) CountActiveByPartner(ctx context.Context) (map[kernel.UUID]int, error) {
	rows, err := r.db.WithContext(ctx).
		Table("shipments").
		Select("partner_id, COUNT(*) AS active_shipments").
		Where("status NOT IN (?, ?)", shipment.Delivered.String(), shipment.Cancelled.String()).
		Group("partner_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[kernel.UUID]int)
	for rows.Next() {
		var partnerID uuid.UUID
		var count int
		if err = rows.Scan(&partnerID, &count); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(partnerID[:])
		if idErr != nil {
			return nil, idErr
		}
		counts[id] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// eventOrder keeps preloaded events in creation order so the aggregate's
// status consistency check sees the newest event last.
func eventOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}

// isReviewConflict reports whether err is the unique violation raised when a
// second review is inserted for the same shipment. The unique index on
// reviews.shipment_id is the backstop for concurrent submissions that both
// loaded a review-less aggregate.
func isReviewConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.TableName == "reviews"
}
