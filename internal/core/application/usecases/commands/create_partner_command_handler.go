package commands

import (
	"context"

	"shipping/internal/core/domain/model/partner"
)

// CreatePartnerCommandHandler handles the business logic for partner registration.
// Creates new delivery partners in the unverified state.
type CreatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewCreatePartnerCommandHandler creates a handler for partner registration operations.
// Requires a PartnerUoWFactory for transactional persistence.
func NewCreatePartnerCommandHandler(uowFactory PartnerUoWFactory) CreatePartnerCommandHandler {
	return CreatePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the partner registration command.
// The partner is persisted unverified and takes no shipments until verified.
func (h CreatePartnerCommandHandler) Handle(ctx context.Context, cmd CreatePartnerCommand) error {
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

	aggregate, err := partner.NewDeliveryPartner(
		cmd.PartnerID(),
		cmd.Name(),
		cmd.Email(),
		cmd.MaxHandlingCapacity(),
		cmd.ServiceableZips(),
	)
	if err != nil {
		return err
	}

	if err = partnerRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
