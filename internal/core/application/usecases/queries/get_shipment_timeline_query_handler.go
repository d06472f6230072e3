package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentTimelineQueryHandler retrieves a shipment's event history.
// A shipment fresh out of creation has an empty timeline: "placed" is
// implicit and carries no event row.
type GetShipmentTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentTimelineQueryHandler creates a handler for timeline queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentTimelineQueryHandler(db *gorm.DB) GetShipmentTimelineQueryHandler {
	return GetShipmentTimelineQueryHandler{db: db}
}

// Handle executes the query to retrieve the timeline, newest event first.
// Returns errs.ErrObjectNotFound when the shipment itself does not exist,
// and an empty slice when it exists but has no events yet.
func (h GetShipmentTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentTimelineQuery,
) ([]GetShipmentTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(1) FROM shipments WHERE id = ?
	`, query.ShipmentID().Bytes()).Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("shipmentId", query.ShipmentID().String())
	}

	events := make([]GetShipmentTimelineQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			description,
			location_zip,
			created_at
		FROM shipment_events
		WHERE shipment_id = ?
		ORDER BY created_at DESC, id
	`, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetShipmentTimelineQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&event.Status,
			&event.Description,
			&event.LocationZip,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ID = eventID
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
