package commands_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/partner"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllOverdue(ctx context.Context, asOf time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) CountActiveByPartner(ctx context.Context) (map[kernel.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetAllByZipCode(
	ctx context.Context,
	zip kernel.ZipCode,
) ([]*partner.DeliveryPartner, error) {
	args := m.Called(ctx, zip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.DeliveryPartner), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

type MockTokenStore struct{ mock.Mock }

func (m *MockTokenStore) Issue(ctx context.Context, shipmentID kernel.UUID) (string, error) {
	args := m.Called(ctx, shipmentID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Consume(ctx context.Context, token string) (kernel.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func mustZip(t *testing.T, value string) kernel.ZipCode {
	t.Helper()
	zip, err := kernel.NewZipCode(value)
	require.NoError(t, err)
	return zip
}

func newVerifiedPartner(t *testing.T, name string, capacity int, zips ...string) *partner.DeliveryPartner {
	t.Helper()
	zipCodes := make([]kernel.ZipCode, 0, len(zips))
	for _, z := range zips {
		zipCodes = append(zipCodes, mustZip(t, z))
	}
	p, err := partner.NewDeliveryPartner(kernel.NewUUID(), name, name+"@partners.example", capacity, zipCodes)
	require.NoError(t, err)
	p.Verify()
	return p
}

func newPlacedShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	weight, err := kernel.NewWeight(2.5)
	require.NoError(t, err)
	contact, err := kernel.NewContact("client@example.com", "")
	require.NoError(t, err)

	createdAt := time.Now()
	s, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"ceramic mugs", weight, mustZip(t, "90210"), contact,
		createdAt, createdAt.Add(72*time.Hour), nil,
	)
	require.NoError(t, err)
	return s
}

func newDeliveredShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s := newPlacedShipment(t)
	require.NoError(t, s.Advance(shipment.Delivered, "", nil, time.Now()))
	return s
}
