package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// SubmitReviewCommandHandler handles review submission.
// The token is consumed before the transaction begins, so a token buys at
// most one submission attempt even under concurrent use. The
// one-review-per-shipment invariant is enforced by the aggregate.
//
// Example:
//
//	handler := NewSubmitReviewCommandHandler(uowFactory, tokenStore)
//	cmd, _ := NewSubmitReviewCommand(token, 5, "fast and careful")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrTokenInvalid) {
//	    // Unknown, expired, or already used token
//	}
type SubmitReviewCommandHandler struct {
	uowFactory ShipmentUoWFactory
	tokenStore ports.TokenStore
}

// NewSubmitReviewCommandHandler creates a handler for review submission.
func NewSubmitReviewCommandHandler(
	uowFactory ShipmentUoWFactory,
	tokenStore ports.TokenStore,
) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
		tokenStore: tokenStore,
	}
}

// Handle processes the review submission command.
// Returns ports.ErrTokenInvalid for an unknown or already consumed token,
// and *errs.AlreadyExistsError when the shipment already carries a review.
func (h SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	shipmentID, err := h.tokenStore.Consume(ctx, cmd.Token())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, shipmentID)
	if err != nil {
		return err
	}

	if err = aggregate.AttachReview(kernel.NewUUID(), cmd.Rating(), cmd.Comment(), time.Now()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
