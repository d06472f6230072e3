package commands

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// IssueReviewTokenCommandHandler issues single-use review tokens.
// A token is only issued for shipments in "delivered" status and before any
// review has been attached. Issuing again produces a new independent token;
// each is consumable once, and the one-review-per-shipment rule is enforced
// on submission.
//
// Example:
//
//	handler := NewIssueReviewTokenCommandHandler(uowFactory, tokenStore)
//	cmd, _ := NewIssueReviewTokenCommand(shipmentID)
//	token, err := handler.Handle(ctx, cmd)
//	var stateErr *shipment.InvalidStateError
//	if errors.As(err, &stateErr) {
//	    // Shipment not delivered yet
//	}
type IssueReviewTokenCommandHandler struct {
	uowFactory ShipmentUoWFactory
	tokenStore ports.TokenStore
}

// NewIssueReviewTokenCommandHandler creates a handler for review token issuance.
// Requires a TokenStore for minting the opaque tokens.
func NewIssueReviewTokenCommandHandler(
	uowFactory ShipmentUoWFactory,
	tokenStore ports.TokenStore,
) IssueReviewTokenCommandHandler {
	return IssueReviewTokenCommandHandler{
		uowFactory: uowFactory,
		tokenStore: tokenStore,
	}
}

// Handle processes the token issuance command and returns the opaque token.
// Returns errs.ErrObjectNotFound when the shipment does not exist,
// *shipment.InvalidStateError when it is not delivered, and
// *errs.AlreadyExistsError when a review was already submitted.
func (h IssueReviewTokenCommandHandler) Handle(ctx context.Context, cmd IssueReviewTokenCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return "", err
	}

	if aggregate.Status() != shipment.Delivered {
		return "", shipment.NewInvalidStateError("issue review token", aggregate.Status())
	}

	if aggregate.Review() != nil {
		return "", errs.NewAlreadyExistsError("review", aggregate.ID().String())
	}

	return h.tokenStore.Issue(ctx, aggregate.ID())
}
