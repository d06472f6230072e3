package commands_test

import (
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssueReviewTokenCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	delivered := newDeliveredShipment(t)

	cmd, err := commands.NewIssueReviewTokenCommand(delivered.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	tokenStore := new(MockTokenStore)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, delivered.ID()).Return(delivered, nil).Once(),
		tokenStore.On("Issue", ctx, delivered.ID()).Return("opaque-token", nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewIssueReviewTokenCommandHandler(factory, tokenStore)
	token, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "opaque-token", token)
	tokenStore.AssertExpectations(t)
}

func TestIssueReviewTokenCommandHandler_Handle_NotDelivered(t *testing.T) {
	ctx := t.Context()
	placed := newPlacedShipment(t)

	cmd, err := commands.NewIssueReviewTokenCommand(placed.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	tokenStore := new(MockTokenStore)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, placed.ID()).Return(placed, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewIssueReviewTokenCommandHandler(factory, tokenStore)
	token, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Empty(t, token)
	require.ErrorIs(t, err, shipment.ErrInvalidState)

	var stateErr *shipment.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, shipment.Placed, stateErr.Status)
	tokenStore.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestIssueReviewTokenCommandHandler_Handle_ReviewAlreadyExists(t *testing.T) {
	ctx := t.Context()
	delivered := newDeliveredShipment(t)
	require.NoError(t, delivered.AttachReview(kernel.NewUUID(), 5, "great", time.Now()))

	cmd, err := commands.NewIssueReviewTokenCommand(delivered.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	tokenStore := new(MockTokenStore)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, delivered.ID()).Return(delivered, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewIssueReviewTokenCommandHandler(factory, tokenStore)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	tokenStore.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestIssueReviewTokenCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()

	cmd, err := commands.NewIssueReviewTokenCommand(shipmentID)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	tokenStore := new(MockTokenStore)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, shipmentID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewIssueReviewTokenCommandHandler(factory, tokenStore)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestIssueReviewTokenCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.IssueReviewTokenCommand

	factory := new(MockShipmentUoWFactory)
	tokenStore := new(MockTokenStore)

	handler := commands.NewIssueReviewTokenCommandHandler(factory, tokenStore)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrIssueReviewTokenCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
