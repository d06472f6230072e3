package queries

import (
	"context"
	"database/sql"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves a single shipment read model.
// Uses a direct SQL query with a review join for optimal read performance
// in the CQRS pattern.
//
// Example:
//
//	handler := NewGetShipmentQueryHandler(db)
//	query, _ := NewGetShipmentQuery(shipmentID)
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // Unknown shipment
//	}
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for single-shipment queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query to retrieve one shipment.
// Returns errs.ErrObjectNotFound when no shipment matches the identifier.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.seller_id,
			s.partner_id,
			s.content,
			s.weight_kg,
			s.destination_zip,
			s.contact_email,
			s.contact_phone,
			s.status,
			s.created_at,
			s.estimated_delivery,
			r.rating,
			r.comment,
			r.created_at
		FROM shipments s
		LEFT JOIN reviews r ON r.shipment_id = s.id
		WHERE s.id = ?
	`, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		return GetShipmentQueryResponse{},
			errs.NewObjectNotFoundError("shipmentId", query.ShipmentID().String())
	}

	var resp GetShipmentQueryResponse
	var id, sellerID, partnerID uuid.UUID
	var rating sql.NullInt64
	var comment sql.NullString
	var reviewedAt sql.NullTime

	err = rows.Scan(
		&id,
		&sellerID,
		&partnerID,
		&resp.Content,
		&resp.WeightKg,
		&resp.DestinationZip,
		&resp.ContactEmail,
		&resp.ContactPhone,
		&resp.Status,
		&resp.CreatedAt,
		&resp.EstimatedDelivery,
		&rating,
		&comment,
		&reviewedAt,
	)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.PartnerID, err = kernel.UUIDFromBytes(partnerID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if rating.Valid {
		resp.Review = &ReviewResponse{
			Rating:    int(rating.Int64),
			Comment:   comment.String,
			CreatedAt: reviewedAt.Time,
		}
	}

	return resp, rows.Err()
}
