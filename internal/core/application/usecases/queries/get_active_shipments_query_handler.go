package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveShipmentsQueryHandler retrieves all non-terminal shipments.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetActiveShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveShipmentsQueryHandler creates a handler for active shipment queries.
// Requires a GORM database connection for query execution.
func NewGetActiveShipmentsQueryHandler(db *gorm.DB) GetActiveShipmentsQueryHandler {
	return GetActiveShipmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve all active shipments.
// Returns shipments that are neither delivered nor cancelled, oldest first.
func (h GetActiveShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveShipmentsQuery,
) ([]GetActiveShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetActiveShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			partner_id,
			content,
			destination_zip,
			status,
			created_at,
			estimated_delivery
		FROM shipments
		WHERE status NOT IN (?, ?)
		ORDER BY created_at, id
	`, shipment.Delivered.String(), shipment.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveShipmentsQueryResponse
		var id, partnerID uuid.UUID

		err = rows.Scan(
			&id,
			&partnerID,
			&resp.Content,
			&resp.DestinationZip,
			&resp.Status,
			&resp.CreatedAt,
			&resp.EstimatedDelivery,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.PartnerID, err = kernel.UUIDFromBytes(partnerID[:]); err != nil {
			return nil, err
		}

		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
