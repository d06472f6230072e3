package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/partnerrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/partner"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// PartnerRepositoryIntegrationTestSuite provides integration tests for
// PartnerRepository using PostgreSQL containers, including the text array
// storage of serviceable zip codes.
type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
	tracker    *MockAggregateTracker
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_partners").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.db, suite.tracker)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAdd_ValidPartner_Success() {
	ctx := context.Background()

	aggregate := suite.createTestPartner("Speedy Couriers", "90210", "10001")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.assertPartnerCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_ExistingPartner_RoundTripsAllFields() {
	ctx := context.Background()

	original := suite.createTestPartner("Night Owl Logistics", "90210", "10001")
	original.Verify()

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	err := suite.repository.Add(ctx, original)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("Night Owl Logistics", retrieved.Name())
	suite.Equal(original.Email(), retrieved.Email())
	suite.True(retrieved.IsVerified())
	suite.Equal(original.MaxHandlingCapacity(), retrieved.MaxHandlingCapacity())
	suite.Equal(original.ServiceableZips(), retrieved.ServiceableZips())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_NonExistentPartner_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_Verification_Persists() {
	ctx := context.Background()

	aggregate := suite.createTestPartner("Pending Partner", "90210")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	aggregate.Verify()
	err = suite.repository.Update(ctx, aggregate)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsVerified())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_NonExistentPartner_ReturnsNotFoundError() {
	aggregate := suite.createTestPartner("Ghost Partner", "90210")

	err := suite.repository.Update(context.Background(), aggregate)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllByZipCode_ReturnsCoveringPartnersOnly() {
	ctx := context.Background()

	covering := suite.createTestPartner("Covers Both", "90210", "10001")
	coveringUnverified := suite.createTestPartner("Covers One", "90210")
	elsewhere := suite.createTestPartner("Covers Neither", "60601")
	covering.Verify()

	for _, aggregate := range []*partner.DeliveryPartner{covering, coveringUnverified, elsewhere} {
		suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	partners, err := suite.repository.GetAllByZipCode(ctx, suite.mustZip("90210"))
	suite.Require().NoError(err)

	// Unverified partners are included: filtering is the caller's job.
	suite.Require().Len(partners, 2)
	suite.Equal("Covers Both", partners[0].Name())
	suite.Equal("Covers One", partners[1].Name())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllByZipCode_NoCoverage_ReturnsEmptySlice() {
	ctx := context.Background()

	aggregate := suite.createTestPartner("Local Only", "60601")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	partners, err := suite.repository.GetAllByZipCode(ctx, suite.mustZip("90210"))
	suite.Require().NoError(err)
	suite.Empty(partners)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestPartner creates an unverified partner serving the given zip codes.
func (suite *PartnerRepositoryIntegrationTestSuite) createTestPartner(
	name string, zipCodes ...string,
) *partner.DeliveryPartner {
	zips := make([]kernel.ZipCode, 0, len(zipCodes))
	for _, code := range zipCodes {
		zips = append(zips, suite.mustZip(code))
	}

	aggregate, err := partner.NewDeliveryPartner(
		kernel.NewUUID(), name, "dispatch@example.com", 3, zips)
	suite.Require().NoError(err)

	return aggregate
}

func (suite *PartnerRepositoryIntegrationTestSuite) mustZip(code string) kernel.ZipCode {
	zip, err := kernel.NewZipCode(code)
	suite.Require().NoError(err)
	return zip
}

// assertPartnerCount verifies the number of partners in the database.
func (suite *PartnerRepositoryIntegrationTestSuite) assertPartnerCount(expected int) {
	var count int64
	err := suite.db.Model(&partnerrepo.PartnerDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
