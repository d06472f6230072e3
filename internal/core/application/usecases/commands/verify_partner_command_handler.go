package commands

import (
	"context"
)

// VerifyPartnerCommandHandler handles partner verification.
// Verification is idempotent: verifying an already verified partner succeeds
// without any visible change.
type VerifyPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewVerifyPartnerCommandHandler creates a handler for partner verification operations.
func NewVerifyPartnerCommandHandler(uowFactory PartnerUoWFactory) VerifyPartnerCommandHandler {
	return VerifyPartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the partner verification command.
// Returns errs.ErrObjectNotFound unchanged when the partner does not exist.
func (h VerifyPartnerCommandHandler) Handle(ctx context.Context, cmd VerifyPartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()

	aggregate, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	aggregate.Verify()

	if err = partnerRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
