package commands_test

import (
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/partner"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateShipmentCommand(t *testing.T) commands.CreateShipmentCommand {
	t.Helper()
	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), "ceramic mugs", 2.5, "90210", "client@example.com", "", nil,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateShipmentCommand(t)

	idle := newVerifiedPartner(t, "idle", 5, "90210")
	busy := newVerifiedPartner(t, "busy", 5, "90210")
	candidates := []*partner.DeliveryPartner{idle, busy}
	loads := map[kernel.UUID]int{busy.ID(): 3}

	shipmentRepo := new(MockShipmentRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	dispatcher := new(MockNotificationDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("GetAllByZipCode", ctx, cmd.Destination()).Return(candidates, nil).Once(),
		shipmentRepo.On("CountActiveByPartner", ctx).Return(loads, nil).Once(),
		shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("ports.Notification")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory, dispatcher, 72*time.Hour)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	shipmentRepo.AssertExpectations(t)
	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	dispatcher.AssertExpectations(t)

	// The least loaded partner gets the shipment.
	added := shipmentRepo.Calls[1].Arguments[1].(*shipment.Shipment)
	assert.True(t, added.PartnerID().IsEqual(idle.ID()))
	assert.Equal(t, shipment.Placed, added.Status())
	assert.Empty(t, added.Events())
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), added.EstimatedDelivery(), 5*time.Second)

	// The client is notified after commit.
	notification := dispatcher.Calls[0].Arguments[1].(ports.Notification)
	assert.Equal(t, ports.NotificationShipmentPlaced, notification.Kind)
	assert.Equal(t, "client@example.com", notification.Recipient)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.CreateShipmentCommand // not constructed properly

	factory := new(MockUoWFactory)
	dispatcher := new(MockNotificationDispatcher)

	handler := commands.NewCreateShipmentCommandHandler(factory, dispatcher, 0)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_NoPartnerAvailable(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateShipmentCommand(t)

	full := newVerifiedPartner(t, "full", 1, "90210")
	loads := map[kernel.UUID]int{full.ID(): 1}

	shipmentRepo := new(MockShipmentRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	dispatcher := new(MockNotificationDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("GetAllByZipCode", ctx, cmd.Destination()).
			Return([]*partner.DeliveryPartner{full}, nil).Once(),
		shipmentRepo.On("CountActiveByPartner", ctx).Return(loads, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory, dispatcher, 0)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrPartnerNotAvailable)
	shipmentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateShipmentCommand(t)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	dispatcher := new(MockNotificationDispatcher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateShipmentCommandHandler(factory, dispatcher, 0)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}

func TestCreateShipmentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateShipmentCommand(t)

	local := newVerifiedPartner(t, "local", 5, "90210")

	shipmentRepo := new(MockShipmentRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	dispatcher := new(MockNotificationDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("GetAllByZipCode", ctx, cmd.Destination()).
			Return([]*partner.DeliveryPartner{local}, nil).Once(),
		shipmentRepo.On("CountActiveByPartner", ctx).Return(map[kernel.UUID]int{}, nil).Once(),
		shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory, dispatcher, 0)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_DispatchFailureIgnored(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateShipmentCommand(t)

	local := newVerifiedPartner(t, "local", 5, "90210")

	shipmentRepo := new(MockShipmentRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	dispatcher := new(MockNotificationDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("GetAllByZipCode", ctx, cmd.Destination()).
			Return([]*partner.DeliveryPartner{local}, nil).Once(),
		shipmentRepo.On("CountActiveByPartner", ctx).Return(map[kernel.UUID]int{}, nil).Once(),
		shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("ports.Notification")).
			Return(errors.New("broker down")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory, dispatcher, 0)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	dispatcher.AssertExpectations(t)
}
