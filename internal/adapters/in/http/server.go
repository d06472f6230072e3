// Package http exposes the shipping use cases over a REST API.
// The server binds and validates request payloads, delegates to command and
// query handlers, and maps domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler   commands.CreateShipmentCommandHandler
	advanceShipmentHandler  commands.AdvanceShipmentCommandHandler
	cancelShipmentHandler   commands.CancelShipmentCommandHandler
	createPartnerHandler    commands.CreatePartnerCommandHandler
	verifyPartnerHandler    commands.VerifyPartnerCommandHandler
	issueReviewTokenHandler commands.IssueReviewTokenCommandHandler
	submitReviewHandler     commands.SubmitReviewCommandHandler

	// Query handlers
	getShipmentHandler         queries.GetShipmentQueryHandler
	getShipmentTimelineHandler queries.GetShipmentTimelineQueryHandler
	getActiveShipmentsHandler  queries.GetActiveShipmentsQueryHandler
	getAllPartnersHandler      queries.GetAllPartnersQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	advanceShipmentHandler commands.AdvanceShipmentCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	createPartnerHandler commands.CreatePartnerCommandHandler,
	verifyPartnerHandler commands.VerifyPartnerCommandHandler,
	issueReviewTokenHandler commands.IssueReviewTokenCommandHandler,
	submitReviewHandler commands.SubmitReviewCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getShipmentTimelineHandler queries.GetShipmentTimelineQueryHandler,
	getActiveShipmentsHandler queries.GetActiveShipmentsQueryHandler,
	getAllPartnersHandler queries.GetAllPartnersQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:      createShipmentHandler,
		advanceShipmentHandler:     advanceShipmentHandler,
		cancelShipmentHandler:      cancelShipmentHandler,
		createPartnerHandler:       createPartnerHandler,
		verifyPartnerHandler:       verifyPartnerHandler,
		issueReviewTokenHandler:    issueReviewTokenHandler,
		submitReviewHandler:        submitReviewHandler,
		getShipmentHandler:         getShipmentHandler,
		getShipmentTimelineHandler: getShipmentTimelineHandler,
		getActiveShipmentsHandler:  getActiveShipmentsHandler,
		getAllPartnersHandler:      getAllPartnersHandler,
		validate:                   validator.New(),
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/active", s.GetActiveShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.GET("/shipments/:id/timeline", s.GetShipmentTimeline)
	api.POST("/shipments/:id/advance", s.AdvanceShipment)
	api.POST("/shipments/:id/cancel", s.CancelShipment)
	api.POST("/shipments/:id/review-token", s.IssueReviewToken)
	api.POST("/reviews", s.SubmitReview)

	api.POST("/partners", s.CreatePartner)
	api.GET("/partners", s.GetAllPartners)
	api.POST("/partners/:id/verify", s.VerifyPartner)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateShipmentRequest is the payload for POST /shipments.
type CreateShipmentRequest struct {
	SellerID       string   `json:"seller_id" validate:"required,uuid"`
	Content        string   `json:"content" validate:"required"`
	WeightKg       float64  `json:"weight_kg" validate:"required,gt=0"`
	DestinationZip string   `json:"destination_zip" validate:"required"`
	ContactEmail   string   `json:"contact_email" validate:"required,email"`
	ContactPhone   string   `json:"contact_phone" validate:"omitempty"`
	Tags           []string `json:"tags" validate:"omitempty,dive,required"`
}

// CreateShipmentResponse returns the identifier of the created shipment.
type CreateShipmentResponse struct {
	ID string `json:"id"`
}

// CreateShipment handles POST /api/v1/shipments.
// The delivery partner is selected automatically; there is no way to choose
// one through the API.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req CreateShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return s.unprocessable(ctx, err)
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(sellerID, req.Content, req.WeightKg,
		req.DestinationZip, req.ContactEmail, req.ContactPhone, req.Tags)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateShipmentResponse{ID: cmd.ShipmentID().String()})
}

// AdvanceShipmentRequest is the payload for POST /shipments/:id/advance.
type AdvanceShipmentRequest struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description" validate:"omitempty"`
	LocationZip string `json:"location_zip" validate:"omitempty"`
}

// AdvanceShipment handles POST /api/v1/shipments/:id/advance.
func (s *Server) AdvanceShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	var req AdvanceShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return s.unprocessable(ctx, err)
	}

	cmd, err := commands.NewAdvanceShipmentCommand(shipmentID, req.Status, req.Description, req.LocationZip)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	if err = s.advanceShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelShipmentRequest is the payload for POST /shipments/:id/cancel.
type CancelShipmentRequest struct {
	Reason string `json:"reason" validate:"omitempty"`
}

// CancelShipment handles POST /api/v1/shipments/:id/cancel.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	var req CancelShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID, req.Reason)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	if err = s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// IssueReviewTokenResponse returns a fresh single-use review token.
type IssueReviewTokenResponse struct {
	Token string `json:"token"`
}

// IssueReviewToken handles POST /api/v1/shipments/:id/review-token.
func (s *Server) IssueReviewToken(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	cmd, err := commands.NewIssueReviewTokenCommand(shipmentID)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	token, err := s.issueReviewTokenHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IssueReviewTokenResponse{Token: token})
}

// SubmitReviewRequest is the payload for POST /reviews.
type SubmitReviewRequest struct {
	Token   string `json:"token" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty"`
}

// SubmitReview handles POST /api/v1/reviews.
// The token authenticates the request; no shipment identifier is accepted.
func (s *Server) SubmitReview(ctx echo.Context) error {
	var req SubmitReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return s.unprocessable(ctx, err)
	}

	cmd, err := commands.NewSubmitReviewCommand(req.Token, req.Rating, req.Comment)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	if err = s.submitReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreatePartnerRequest is the payload for POST /partners.
type CreatePartnerRequest struct {
	Name                string   `json:"name" validate:"required"`
	Email               string   `json:"email" validate:"required,email"`
	MaxHandlingCapacity int      `json:"max_handling_capacity" validate:"required,gt=0"`
	ServiceableZips     []string `json:"serviceable_zips" validate:"required,min=1,dive,required"`
}

// CreatePartnerResponse returns the identifier of the created partner.
type CreatePartnerResponse struct {
	ID string `json:"id"`
}

// CreatePartner handles POST /api/v1/partners.
// Partners start unverified and receive no shipments until verified.
func (s *Server) CreatePartner(ctx echo.Context) error {
	var req CreatePartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return s.unprocessable(ctx, err)
	}

	cmd, err := commands.NewCreatePartnerCommand(req.Name, req.Email,
		req.MaxHandlingCapacity, req.ServiceableZips)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	if err = s.createPartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatePartnerResponse{ID: cmd.PartnerID().String()})
}

// VerifyPartner handles POST /api/v1/partners/:id/verify.
func (s *Server) VerifyPartner(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	cmd, err := commands.NewVerifyPartnerCommand(partnerID)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	if err = s.verifyPartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewResponse represents an attached review in shipment payloads.
type ReviewResponse struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShipmentResponse is the payload for GET /shipments/:id.
type ShipmentResponse struct {
	ID                string          `json:"id"`
	SellerID          string          `json:"seller_id"`
	PartnerID         string          `json:"partner_id"`
	Content           string          `json:"content"`
	WeightKg          float64         `json:"weight_kg"`
	DestinationZip    string          `json:"destination_zip"`
	ContactEmail      string          `json:"contact_email"`
	ContactPhone      string          `json:"contact_phone,omitempty"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	Review            *ReviewResponse `json:"review,omitempty"`
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	result, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := ShipmentResponse{
		ID:                result.ID.String(),
		SellerID:          result.SellerID.String(),
		PartnerID:         result.PartnerID.String(),
		Content:           result.Content,
		WeightKg:          result.WeightKg,
		DestinationZip:    result.DestinationZip,
		ContactEmail:      result.ContactEmail,
		ContactPhone:      result.ContactPhone,
		Status:            result.Status,
		CreatedAt:         result.CreatedAt,
		EstimatedDelivery: result.EstimatedDelivery,
	}
	if result.Review != nil {
		response.Review = &ReviewResponse{
			Rating:    result.Review.Rating,
			Comment:   result.Review.Comment,
			CreatedAt: result.Review.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TimelineEventResponse represents one entry in a shipment's timeline payload.
type TimelineEventResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	LocationZip string    `json:"location_zip"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetShipmentTimeline handles GET /api/v1/shipments/:id/timeline.
func (s *Server) GetShipmentTimeline(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	query, err := queries.NewGetShipmentTimelineQuery(shipmentID)
	if err != nil {
		return s.unprocessable(ctx, err)
	}

	events, err := s.getShipmentTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]TimelineEventResponse, len(events))
	for i, event := range events {
		response[i] = TimelineEventResponse{
			ID:          event.ID.String(),
			Status:      event.Status,
			Description: event.Description,
			LocationZip: event.LocationZip,
			CreatedAt:   event.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ActiveShipmentResponse represents one entry in the active shipments listing.
type ActiveShipmentResponse struct {
	ID                string    `json:"id"`
	PartnerID         string    `json:"partner_id"`
	Content           string    `json:"content"`
	DestinationZip    string    `json:"destination_zip"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

// GetActiveShipments handles GET /api/v1/shipments/active.
func (s *Server) GetActiveShipments(ctx echo.Context) error {
	query := queries.NewGetActiveShipmentsQuery()

	shipments, err := s.getActiveShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]ActiveShipmentResponse, len(shipments))
	for i, item := range shipments {
		response[i] = ActiveShipmentResponse{
			ID:                item.ID.String(),
			PartnerID:         item.PartnerID.String(),
			Content:           item.Content,
			DestinationZip:    item.DestinationZip,
			Status:            item.Status,
			CreatedAt:         item.CreatedAt,
			EstimatedDelivery: item.EstimatedDelivery,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PartnerResponse represents one entry in the partner listing.
type PartnerResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Verified            bool     `json:"verified"`
	MaxHandlingCapacity int      `json:"max_handling_capacity"`
	ServiceableZips     []string `json:"serviceable_zips"`
	ActiveShipments     int      `json:"active_shipments"`
}

// GetAllPartners handles GET /api/v1/partners.
func (s *Server) GetAllPartners(ctx echo.Context) error {
	query := queries.NewGetAllPartnersQuery()

	partners, err := s.getAllPartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]PartnerResponse, len(partners))
	for i, item := range partners {
		response[i] = PartnerResponse{
			ID:                  item.ID.String(),
			Name:                item.Name,
			Email:               item.Email,
			Verified:            item.Verified,
			MaxHandlingCapacity: item.MaxHandlingCapacity,
			ServiceableZips:     item.ServiceableZips,
			ActiveShipments:     item.ActiveShipments,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func (s *Server) unprocessable(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: err.Error(),
	})
}

// errorResponse maps a use case error onto an HTTP response.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	status := statusFromError(err)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// statusFromError translates the error taxonomy of the use case layer into
// HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrPartnerNotAvailable):
		return http.StatusNotAcceptable
	case errors.Is(err, errs.ErrAlreadyExists),
		errors.Is(err, shipment.ErrInvalidTransition),
		errors.Is(err, shipment.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
