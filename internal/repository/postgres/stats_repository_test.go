package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	"github.com/waste-management/internal/repository/postgres/testhelpers"
)

// StatsRepositoryTestSuite tests dashboard aggregates against a seeded database
type StatsRepositoryTestSuite struct {
	suite.Suite
	testDB     *testhelpers.TestDB
	repo       repository.StatsRepository
	pickupRepo repository.PickupRepository
	ctx        context.Context

	rivertonID uuid.UUID
	lakesideID uuid.UUID
	citizenID  uuid.UUID
	driverID   uuid.UUID
}

// SetupSuite runs once before all tests in the suite
func (s *StatsRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := s.testDB.Cleanup(context.Background())
	s.NoError(err, "Failed to cleanup test database")

	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	fixtures := []string{
		"local_governments.sql",
		"users.sql",
		"vehicles.sql",
	}
	err = testhelpers.LoadFixtures(
		s.testDB.DB.DB,
		"testdata/fixtures",
		fixtures,
	)
	s.NoError(err, "Failed to load fixtures")

	s.rivertonID, err = testhelpers.GetLocalGovernmentIDByName(s.testDB.DB.DB, "Riverton")
	s.NoError(err)
	s.lakesideID, err = testhelpers.GetLocalGovernmentIDByName(s.testDB.DB.DB, "Lakeside")
	s.NoError(err)
	s.citizenID, err = testhelpers.GetUserIDByEmail(s.testDB.DB.DB, "anna.citizen@example.com")
	s.NoError(err)
	s.driverID, err = testhelpers.GetUserIDByEmail(s.testDB.DB.DB, "dmitry.driver@example.com")
	s.NoError(err)

	s.repo = testhelpers.NewStatsRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.pickupRepo = testhelpers.NewPickupRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests in the suite
func (s *StatsRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest reseeds a fixed set of pickups before each test:
// requested, assigned, in_progress, completed (30 kg) and cancelled
func (s *StatsRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	_, err := s.testDB.DB.ExecContext(s.ctx, "TRUNCATE TABLE pickups CASCADE")
	s.Require().NoError(err)

	now := time.Now()
	s.seedPickup(domain.PickupRequested, now.Add(24*time.Hour), nil, nil)
	s.seedPickup(domain.PickupAssigned, now.Add(48*time.Hour), &s.driverID, nil)
	s.seedPickup(domain.PickupInProgress, now.Add(2*time.Hour), &s.driverID, nil)
	weight := 30.0
	s.seedPickup(domain.PickupCompleted, now.Add(-24*time.Hour), &s.driverID, &weight)
	s.seedPickup(domain.PickupCancelled, now.Add(72*time.Hour), nil, nil)
}

func (s *StatsRepositoryTestSuite) seedPickup(status domain.PickupStatus, scheduled time.Time, driverID *uuid.UUID, actualWeight *float64) {
	p := &domain.Pickup{
		UserID:            s.citizenID,
		AssignedDriverID:  driverID,
		LocalGovernmentID: s.rivertonID,
		PickupType:        domain.PickupRegular,
		WasteDescription:  "Household waste",
		EstimatedWeight:   25,
		Location: domain.Location{
			Address: "12 Elm Street",
			City:    "Riverton",
			Lat:     40.7140,
			Lng:     -74.0010,
		},
		ScheduledDate:     scheduled,
		PreferredTimeSlot: domain.SlotMorning,
		Status:            status,
	}
	s.Require().NoError(s.pickupRepo.Create(s.ctx, p))

	// Create does not persist the actual weight, it only appears on completion
	if actualWeight != nil {
		p.ActualWeight = actualWeight
		completedAt := scheduled.Add(time.Hour)
		p.CompletedAt = &completedAt
		s.Require().NoError(s.pickupRepo.Update(s.ctx, p))
	}
}

func (s *StatsRepositoryTestSuite) TestGetAdminStats() {
	stats, err := s.repo.GetAdminStats(s.ctx, s.rivertonID)

	s.NoError(err)
	s.Require().NotNil(stats)

	s.Equal(5, stats.PickupCount)
	s.Equal(1, stats.CompletedPickups)
	// requested + scheduled + assigned; in_progress is already being handled
	s.Equal(2, stats.PendingPickups)
	s.Equal(1, stats.PickupsByStatus[domain.PickupRequested])
	s.Equal(1, stats.PickupsByStatus[domain.PickupInProgress])
	s.Equal(1, stats.PickupsByStatus[domain.PickupCancelled])

	s.Equal(4, stats.VehicleCount)
	s.Equal(1, stats.UserCount)
	s.Equal(1, stats.DriverCount)

	s.InDelta(30.0, stats.TotalWasteKg, 0.001)

	s.Len(stats.PickupsByMonth, 12)
	total := 0
	for _, m := range stats.PickupsByMonth {
		total += m.Count
	}
	s.GreaterOrEqual(total, 4) // a seeded date may fall into the neighbouring year

	s.NotEmpty(stats.RecentPickups)
	s.LessOrEqual(len(stats.RecentPickups), 5)
	s.False(stats.GeneratedAt.IsZero())
}

func (s *StatsRepositoryTestSuite) TestGetAdminStats_EmptyMunicipality() {
	stats, err := s.repo.GetAdminStats(s.ctx, s.lakesideID)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(0, stats.PickupCount)
	s.Equal(1, stats.VehicleCount)
	s.Equal(1, stats.DriverCount)
	s.Zero(stats.TotalWasteKg)
	s.Empty(stats.RecentPickups)
}

func (s *StatsRepositoryTestSuite) TestGetDriverStats() {
	stats, err := s.repo.GetDriverStats(s.ctx, s.driverID)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(3, stats.AssignedPickups)
	s.Equal(1, stats.CompletedPickups)
	s.Equal(2, stats.PendingPickups)
	s.InDelta(30.0, stats.TotalWasteKg, 0.001)

	// assigned and in_progress pickups scheduled in the future
	s.Len(stats.UpcomingPickups, 2)
	s.True(stats.UpcomingPickups[0].ScheduledDate.Before(stats.UpcomingPickups[1].ScheduledDate))
}

func (s *StatsRepositoryTestSuite) TestGetDriverStats_NoWork() {
	unknownDriver := uuid.New()

	stats, err := s.repo.GetDriverStats(s.ctx, unknownDriver)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Zero(stats.AssignedPickups)
	s.Zero(stats.TotalWasteKg)
	s.Empty(stats.UpcomingPickups)
}

func (s *StatsRepositoryTestSuite) TestGetUserStats() {
	stats, err := s.repo.GetUserStats(s.ctx, s.citizenID)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(5, stats.PickupCount)
	s.Equal(1, stats.CompletedPickups)
	s.Equal(3, stats.PendingPickups)
	s.InDelta(30.0, stats.TotalWasteKg, 0.001)

	// Nearest future pickup the citizen is still waiting for
	s.Require().NotNil(stats.NextPickup)
	s.Equal(domain.PickupRequested, stats.NextPickup.Status)

	s.NotEmpty(stats.RecentPickups)
	s.LessOrEqual(len(stats.RecentPickups), 5)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositoryTestSuite))
}
