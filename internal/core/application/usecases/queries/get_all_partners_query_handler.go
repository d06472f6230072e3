package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAllPartnersQueryHandler retrieves all delivery partners with their
// current load. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetAllPartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllPartnersQueryHandler creates a handler for partner listing queries.
// Requires a GORM database connection for query execution.
func NewGetAllPartnersQueryHandler(db *gorm.DB) GetAllPartnersQueryHandler {
	return GetAllPartnersQueryHandler{db: db}
}

// Handle executes the query to retrieve all delivery partners.
// Returns partners sorted by name, each with its count of active shipments.
func (h GetAllPartnersQueryHandler) Handle(
	ctx context.Context,
	query GetAllPartnersQuery,
) ([]GetAllPartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]GetAllPartnersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.name,
			p.email,
			p.verified,
			p.max_handling_capacity,
			p.serviceable_zips,
			COUNT(s.id) AS active_shipments
		FROM delivery_partners p
		LEFT JOIN shipments s
			ON s.partner_id = p.id
			AND s.status NOT IN (?, ?)
		GROUP BY p.id, p.name, p.email, p.verified, p.max_handling_capacity, p.serviceable_zips
		ORDER BY p.name
	`, shipment.Delivered.String(), shipment.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllPartnersQueryResponse
		var id uuid.UUID
		var zips pq.StringArray

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Email,
			&resp.Verified,
			&resp.MaxHandlingCapacity,
			&zips,
			&resp.ActiveShipments,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		resp.ServiceableZips = zips

		partners = append(partners, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
