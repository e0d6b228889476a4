package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/repository/postgres/testhelpers"
)

// UserRepositoryTestSuite tests all methods of UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.UserRepository
	ctx    context.Context

	rivertonID uuid.UUID
	lakesideID uuid.UUID
}

// SetupSuite runs once before all tests in the suite
func (s *UserRepositoryTestSuite) SetupSuite() {
	// Initialize test database connection
	s.testDB = testhelpers.SetupTestDB(s.T())

	// Clean up existing data first
	err := s.testDB.Cleanup(context.Background())
	s.NoError(err, "Failed to cleanup test database")

	// Apply migrations (skip if tables already exist)
	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	// Load fixtures
	fixtures := []string{
		"local_governments.sql",
		"users.sql",
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

	// Create repository using test helper that wraps DB with logger
	s.repo = testhelpers.NewUserRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests in the suite
func (s *UserRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest runs before each test
func (s *UserRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *UserRepositoryTestSuite) TestCreate_Success() {
	user := &domain.User{
		FirstName:    "Pavel",
		LastName:     "Ivanov",
		Email:        "pavel.create@example.com",
		PasswordHash: "$2a$10$not.a.real.hash",
		Role:         domain.RoleUser,
	}

	err := s.repo.Create(s.ctx, user)

	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.False(user.CreatedAt.IsZero())

	stored, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.NotNil(stored)
	s.Equal("pavel.create@example.com", stored.Email)
	s.Equal(domain.RoleUser, stored.Role)
	s.False(stored.OnboardingCompleted)
	s.Nil(stored.LocalGovernmentID)
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateEmail() {
	user := &domain.User{
		FirstName:    "Copy",
		LastName:     "Cat",
		Email:        "anna.citizen@example.com", // already in fixtures
		PasswordHash: "$2a$10$not.a.real.hash",
		Role:         domain.RoleUser,
	}

	err := s.repo.Create(s.ctx, user)

	s.ErrorIs(err, apperrors.ErrEmailInUse)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_Success() {
	user, err := s.repo.GetByEmail(s.ctx, "anna.citizen@example.com")

	s.NoError(err)
	s.NotNil(user)
	s.Equal("Anna", user.FirstName)
	s.Equal("Petrova", user.LastName)
	s.Equal(domain.RoleUser, user.Role)
	s.True(user.OnboardingCompleted)
	s.NotNil(user.LocalGovernmentID)
	s.Equal(s.rivertonID, *user.LocalGovernmentID)
	s.NotNil(user.Lat)
	s.InDelta(40.7140, *user.Lat, 0.0001)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_CaseInsensitive() {
	user, err := s.repo.GetByEmail(s.ctx, "ANNA.CITIZEN@EXAMPLE.COM")

	s.NoError(err)
	s.NotNil(user)
	s.Equal("anna.citizen@example.com", user.Email)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_NotFound() {
	user, err := s.repo.GetByEmail(s.ctx, "nobody@example.com")

	// Missing user is not an error, the usecase decides what to do
	s.NoError(err)
	s.Nil(user)
}

func (s *UserRepositoryTestSuite) TestGetByID_NotFound() {
	user, err := s.repo.GetByID(s.ctx, uuid.New())

	s.NoError(err)
	s.Nil(user)
}

func (s *UserRepositoryTestSuite) TestGetByID_DriverFields() {
	driverID, err := testhelpers.GetUserIDByEmail(s.testDB.DB.DB, "dmitry.driver@example.com")
	s.NoError(err)

	user, err := s.repo.GetByID(s.ctx, driverID)

	s.NoError(err)
	s.NotNil(user)
	s.Equal(domain.RoleDriver, user.Role)
	s.NotNil(user.LicenseNumber)
	s.Equal("DL-44821", *user.LicenseNumber)
	s.True(user.LicenseVerified)
}

func (s *UserRepositoryTestSuite) TestList_ByLocalGovernment() {
	users, err := s.repo.List(s.ctx, repository.UserFilter{
		LocalGovernmentID: &s.rivertonID,
	})

	s.NoError(err)
	s.GreaterOrEqual(len(users), 3) // anna, dmitry, olga
	for _, u := range users {
		s.NotNil(u.LocalGovernmentID)
		s.Equal(s.rivertonID, *u.LocalGovernmentID)
	}
}

func (s *UserRepositoryTestSuite) TestList_ByRole() {
	role := domain.RoleDriver
	users, err := s.repo.List(s.ctx, repository.UserFilter{
		LocalGovernmentID: &s.rivertonID,
		Role:              &role,
	})

	s.NoError(err)
	s.Len(users, 1)
	s.Equal("dmitry.driver@example.com", users[0].Email)
}

func (s *UserRepositoryTestSuite) TestUpdate_Success() {
	user := &domain.User{
		FirstName:    "Update",
		LastName:     "Me",
		Email:        "update.me@example.com",
		PasswordHash: "$2a$10$not.a.real.hash",
		Role:         domain.RoleUser,
	}
	s.Require().NoError(s.repo.Create(s.ctx, user))

	phone := "+1-555-2002"
	user.FirstName = "Updated"
	user.Phone = &phone
	user.LocalGovernmentID = &s.lakesideID

	err := s.repo.Update(s.ctx, user)
	s.NoError(err)

	stored, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal("Updated", stored.FirstName)
	s.NotNil(stored.Phone)
	s.Equal(phone, *stored.Phone)
	s.NotNil(stored.LocalGovernmentID)
	s.Equal(s.lakesideID, *stored.LocalGovernmentID)
}

func (s *UserRepositoryTestSuite) TestUpdate_DuplicateEmail() {
	user := &domain.User{
		FirstName:    "Second",
		LastName:     "Account",
		Email:        "second.account@example.com",
		PasswordHash: "$2a$10$not.a.real.hash",
		Role:         domain.RoleUser,
	}
	s.Require().NoError(s.repo.Create(s.ctx, user))

	user.Email = "anna.citizen@example.com"
	err := s.repo.Update(s.ctx, user)

	s.ErrorIs(err, apperrors.ErrEmailInUse)
}

func (s *UserRepositoryTestSuite) TestUpdatePassword() {
	user := &domain.User{
		FirstName:    "Pass",
		LastName:     "Change",
		Email:        "pass.change@example.com",
		PasswordHash: "$2a$10$old.hash",
		Role:         domain.RoleUser,
	}
	s.Require().NoError(s.repo.Create(s.ctx, user))

	err := s.repo.UpdatePassword(s.ctx, user.ID, "$2a$10$new.hash")
	s.NoError(err)

	stored, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal("$2a$10$new.hash", stored.PasswordHash)
}

func (s *UserRepositoryTestSuite) TestSetLocation_CompletesOnboarding() {
	user := &domain.User{
		FirstName:    "New",
		LastName:     "Resident",
		Email:        "new.resident@example.com",
		PasswordHash: "$2a$10$not.a.real.hash",
		Role:         domain.RoleUser,
	}
	s.Require().NoError(s.repo.Create(s.ctx, user))
	s.False(user.OnboardingCompleted)

	err := s.repo.SetLocation(s.ctx, user.ID, domain.Location{
		Address: "7 Pine Avenue",
		City:    "Riverton",
		Lat:     40.7150,
		Lng:     -74.0020,
	})
	s.NoError(err)

	stored, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.True(stored.OnboardingCompleted)
	s.NotNil(stored.Address)
	s.Equal("7 Pine Avenue", *stored.Address)
	s.NotNil(stored.Lat)
	s.InDelta(40.7150, *stored.Lat, 0.0001)
	s.NotNil(stored.Lng)
	s.InDelta(-74.0020, *stored.Lng, 0.0001)
}

func (s *UserRepositoryTestSuite) TestDelete() {
	user := &domain.User{
		FirstName:    "To",
		LastName:     "Delete",
		Email:        "to.delete@example.com",
		PasswordHash: "$2a$10$not.a.real.hash",
		Role:         domain.RoleUser,
	}
	s.Require().NoError(s.repo.Create(s.ctx, user))

	err := s.repo.Delete(s.ctx, user.ID)
	s.NoError(err)

	stored, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.Nil(stored)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
