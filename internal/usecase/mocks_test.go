package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetLocation(ctx context.Context, id uuid.UUID, loc domain.Location) error {
	args := m.Called(ctx, id, loc)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLocalGovernmentRepository is a mock of LocalGovernmentRepository
type MockLocalGovernmentRepository struct {
	mock.Mock
}

func (m *MockLocalGovernmentRepository) Create(ctx context.Context, lg *domain.LocalGovernment) error {
	args := m.Called(ctx, lg)
	return args.Error(0)
}

func (m *MockLocalGovernmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LocalGovernment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocalGovernment), args.Error(1)
}

func (m *MockLocalGovernmentRepository) List(ctx context.Context) ([]domain.LocalGovernment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LocalGovernment), args.Error(1)
}

func (m *MockLocalGovernmentRepository) Update(ctx context.Context, lg *domain.LocalGovernment) error {
	args := m.Called(ctx, lg)
	return args.Error(0)
}

func (m *MockLocalGovernmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleRepository is a mock of VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByDriver(ctx context.Context, driverID uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListAssignable(ctx context.Context, localGovernmentID uuid.UUID) ([]domain.Vehicle, error) {
	args := m.Called(ctx, localGovernmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVehicleRepository) Release(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPickupRepository is a mock of PickupRepository
type MockPickupRepository struct {
	mock.Mock
}

func (m *MockPickupRepository) Create(ctx context.Context, p *domain.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pickup), args.Error(1)
}

func (m *MockPickupRepository) List(ctx context.Context, filter repository.PickupFilter) ([]domain.Pickup, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pickup), args.Error(1)
}

func (m *MockPickupRepository) Update(ctx context.Context, p *domain.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupRepository) Assign(ctx context.Context, pickupID, vehicleID uuid.UUID, driverID *uuid.UUID) error {
	args := m.Called(ctx, pickupID, vehicleID, driverID)
	return args.Error(0)
}

func (m *MockPickupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetAdminStats(ctx context.Context, localGovernmentID uuid.UUID) (*domain.AdminStats, error) {
	args := m.Called(ctx, localGovernmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}

func (m *MockStatsRepository) GetDriverStats(ctx context.Context, driverID uuid.UUID) (*domain.DriverStats, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverStats), args.Error(1)
}

func (m *MockStatsRepository) GetUserStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetAdminStats(ctx context.Context, localGovernmentID uuid.UUID) (*domain.AdminStats, error) {
	args := m.Called(ctx, localGovernmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}

func (m *MockCacheRepository) SetAdminStats(ctx context.Context, localGovernmentID uuid.UUID, stats *domain.AdminStats, ttl time.Duration) error {
	args := m.Called(ctx, localGovernmentID, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetDriverStats(ctx context.Context, driverID uuid.UUID) (*domain.DriverStats, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverStats), args.Error(1)
}

func (m *MockCacheRepository) SetDriverStats(ctx context.Context, driverID uuid.UUID, stats *domain.DriverStats, ttl time.Duration) error {
	args := m.Called(ctx, driverID, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetUserStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockCacheRepository) SetUserStats(ctx context.Context, userID uuid.UUID, stats *domain.UserStats, ttl time.Duration) error {
	args := m.Called(ctx, userID, stats, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishAssignEvent(ctx context.Context, event domain.PickupAssignEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func ptrFloat64(f float64) *float64 {
	return &f
}

func ptrString(s string) *string {
	return &s
}

func ptrStatus(s domain.PickupStatus) *domain.PickupStatus {
	return &s
}
