package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/partner"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreatePartnerCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCreatePartnerCommand(
			"Speedy Logistics", "dispatch@speedy.example", 10, []string{"90210", "10001"},
		)

		require.NoError(t, err)
		assert.Equal(t, "Speedy Logistics", cmd.Name())
		assert.Equal(t, "dispatch@speedy.example", cmd.Email())
		assert.Equal(t, 10, cmd.MaxHandlingCapacity())
		assert.Len(t, cmd.ServiceableZips(), 2)
		require.NoError(t, cmd.PartnerID().Validate())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := commands.NewCreatePartnerCommand("", "dispatch@speedy.example", 10, []string{"90210"})

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrPartnerNameIsRequired)
	})

	t.Run("should reject non-positive capacity", func(t *testing.T) {
		_, err := commands.NewCreatePartnerCommand("Speedy", "dispatch@speedy.example", 0, []string{"90210"})

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrCapacityIsInvalid)
	})

	t.Run("should reject empty zip list", func(t *testing.T) {
		_, err := commands.NewCreatePartnerCommand("Speedy", "dispatch@speedy.example", 10, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed zip", func(t *testing.T) {
		_, err := commands.NewCreatePartnerCommand("Speedy", "dispatch@speedy.example", 10, []string{"9021"})

		require.Error(t, err)
	})
}

func TestCreatePartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreatePartnerCommand(
		"Speedy Logistics", "dispatch@speedy.example", 10, []string{"90210"},
	)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Add", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePartnerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	added := partnerRepo.Calls[0].Arguments[1].(*partner.DeliveryPartner)
	assert.True(t, added.ID().IsEqual(cmd.PartnerID()))
	assert.False(t, added.IsVerified())
}

func TestCreatePartnerCommandHandler_Handle_AlreadyExists(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreatePartnerCommand(
		"Speedy Logistics", "dispatch@speedy.example", 10, []string{"90210"},
	)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	duplicateErr := errs.NewAlreadyExistsError("partner", cmd.PartnerID().String())
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Add", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).
			Return(duplicateErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePartnerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestCreatePartnerCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.CreatePartnerCommand

	factory := new(MockPartnerUoWFactory)
	handler := commands.NewCreatePartnerCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreatePartnerCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreatePartnerCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreatePartnerCommand(
		"Speedy Logistics", "dispatch@speedy.example", 10, []string{"90210"},
	)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockPartnerUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreatePartnerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
