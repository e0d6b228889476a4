package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/usecase"
	"github.com/waste-management/internal/usecase/dto"
)

type pickupFixture struct {
	pickups  *MockPickupRepository
	vehicles *MockVehicleRepository
	users    *MockUserRepository
	stream   *MockStreamRepository
	lgs      *MockLocalGovernmentRepository
	uc       *usecase.PickupUseCase
}

func newPickupFixture() *pickupFixture {
	logger := zap.NewNop()
	f := &pickupFixture{
		pickups:  &MockPickupRepository{},
		vehicles: &MockVehicleRepository{},
		users:    &MockUserRepository{},
		stream:   &MockStreamRepository{},
		lgs:      &MockLocalGovernmentRepository{},
	}
	lgUC := usecase.NewLocalGovernmentUseCase(f.lgs, logger)
	f.uc = usecase.NewPickupUseCase(f.pickups, f.vehicles, f.users, f.stream, lgUC, logger)
	return f
}

func TestPickupUseCase_TryAssign(t *testing.T) {
	ctx := context.Background()
	lgID := uuid.New()
	pickupID := uuid.New()

	basePickup := func() *domain.Pickup {
		return &domain.Pickup{
			ID:                pickupID,
			UserID:            uuid.New(),
			LocalGovernmentID: lgID,
			Status:            domain.PickupRequested,
			Location:          domain.Location{Lat: 6.45, Lng: 3.39},
		}
	}

	t.Run("nearest vehicle claimed first", func(t *testing.T) {
		f := newPickupFixture()

		farID := uuid.New()
		nearID := uuid.New()
		driverID := uuid.New()
		// Дальняя машина идет первой из репозитория: порядок должен
		// определить Хаверсин, а не БД
		candidates := []domain.Vehicle{
			{ID: farID, LocalGovernmentID: lgID, CurrentLat: ptrFloat64(9.06), CurrentLng: ptrFloat64(7.49)},
			{ID: nearID, DriverID: &driverID, LocalGovernmentID: lgID, CurrentLat: ptrFloat64(6.46), CurrentLng: ptrFloat64(3.40)},
		}

		f.pickups.On("GetByID", ctx, pickupID).Return(basePickup(), nil)
		f.vehicles.On("ListAssignable", ctx, lgID).Return(candidates, nil)
		f.vehicles.On("Claim", ctx, nearID).Return(true, nil)
		f.pickups.On("Assign", ctx, pickupID, nearID, &driverID).Return(nil)

		assigned, err := f.uc.TryAssign(ctx, pickupID)

		assert.NoError(t, err)
		assert.True(t, assigned)
		f.vehicles.AssertNotCalled(t, "Claim", ctx, farID)
	})

	t.Run("lost claim race falls through to next candidate", func(t *testing.T) {
		f := newPickupFixture()

		firstID := uuid.New()
		secondID := uuid.New()
		candidates := []domain.Vehicle{
			{ID: firstID, LocalGovernmentID: lgID, CurrentLat: ptrFloat64(6.46), CurrentLng: ptrFloat64(3.40)},
			{ID: secondID, LocalGovernmentID: lgID, CurrentLat: ptrFloat64(6.50), CurrentLng: ptrFloat64(3.45)},
		}

		f.pickups.On("GetByID", ctx, pickupID).Return(basePickup(), nil)
		f.vehicles.On("ListAssignable", ctx, lgID).Return(candidates, nil)
		f.vehicles.On("Claim", ctx, firstID).Return(false, nil)
		f.vehicles.On("Claim", ctx, secondID).Return(true, nil)
		f.pickups.On("Assign", ctx, pickupID, secondID, (*uuid.UUID)(nil)).Return(nil)

		assigned, err := f.uc.TryAssign(ctx, pickupID)

		assert.NoError(t, err)
		assert.True(t, assigned)
	})

	t.Run("no candidates leaves pickup unassigned", func(t *testing.T) {
		f := newPickupFixture()

		f.pickups.On("GetByID", ctx, pickupID).Return(basePickup(), nil)
		f.vehicles.On("ListAssignable", ctx, lgID).Return([]domain.Vehicle{}, nil)

		assigned, err := f.uc.TryAssign(ctx, pickupID)

		assert.NoError(t, err)
		assert.False(t, assigned)
	})

	t.Run("pickup already moved on is not reassigned", func(t *testing.T) {
		f := newPickupFixture()

		p := basePickup()
		p.Status = domain.PickupCancelled
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)

		assigned, err := f.uc.TryAssign(ctx, pickupID)

		assert.NoError(t, err)
		assert.True(t, assigned)
		f.vehicles.AssertNotCalled(t, "ListAssignable")
	})

	t.Run("claimed vehicle released when pickup slips away", func(t *testing.T) {
		f := newPickupFixture()

		vehicleID := uuid.New()
		candidates := []domain.Vehicle{
			{ID: vehicleID, LocalGovernmentID: lgID, CurrentLat: ptrFloat64(6.46), CurrentLng: ptrFloat64(3.40)},
		}

		f.pickups.On("GetByID", ctx, pickupID).Return(basePickup(), nil)
		f.vehicles.On("ListAssignable", ctx, lgID).Return(candidates, nil)
		f.vehicles.On("Claim", ctx, vehicleID).Return(true, nil)
		f.pickups.On("Assign", ctx, pickupID, vehicleID, (*uuid.UUID)(nil)).
			Return(apperrors.ErrInvalidStatusTransition)
		f.vehicles.On("Release", ctx, vehicleID).Return(nil)

		assigned, err := f.uc.TryAssign(ctx, pickupID)

		assert.NoError(t, err)
		assert.True(t, assigned)
		f.vehicles.AssertCalled(t, "Release", ctx, vehicleID)
	})
}

func TestPickupUseCase_Create(t *testing.T) {
	ctx := context.Background()
	lgID := uuid.New()
	userID := uuid.New()
	session := dto.Session{UserID: userID, Role: domain.RoleUser}

	validReq := dto.CreatePickupRequest{
		PickupType:        "regular",
		WasteDescription:  "household waste",
		EstimatedWeight:   20,
		Address:           "12 Marina Rd",
		City:              "Lagos",
		Lat:               6.45,
		Lng:               3.39,
		ScheduledDate:     time.Now().Add(48 * time.Hour),
		PreferredTimeSlot: "morning",
	}

	t.Run("no available vehicle enqueues retry", func(t *testing.T) {
		f := newPickupFixture()

		user := &domain.User{ID: userID, Role: domain.RoleUser, LocalGovernmentID: &lgID}
		f.users.On("GetByID", ctx, userID).Return(user, nil)
		f.pickups.On("Create", ctx, mock.MatchedBy(func(p *domain.Pickup) bool {
			return p.Status == domain.PickupRequested && p.LocalGovernmentID == lgID
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Pickup).ID = uuid.New()
		}).Return(nil)
		f.pickups.On("GetByID", ctx, mock.Anything).Return(&domain.Pickup{Status: domain.PickupRequested, LocalGovernmentID: lgID, Location: domain.Location{Lat: 6.45, Lng: 3.39}}, nil)
		f.vehicles.On("ListAssignable", ctx, lgID).Return([]domain.Vehicle{}, nil)
		f.stream.On("PublishAssignEvent", ctx, mock.MatchedBy(func(e domain.PickupAssignEvent) bool {
			return e.Attempt == 1
		})).Return(nil)

		_, err := f.uc.Create(ctx, session, validReq)

		assert.NoError(t, err)
		f.stream.AssertExpectations(t)
	})

	t.Run("past scheduled date rejected", func(t *testing.T) {
		f := newPickupFixture()

		req := validReq
		req.ScheduledDate = time.Now().Add(-48 * time.Hour)

		_, err := f.uc.Create(ctx, session, req)

		assert.Error(t, err)
		f.pickups.AssertNotCalled(t, "Create")
	})

	t.Run("citizen without municipality gets one resolved by location", func(t *testing.T) {
		f := newPickupFixture()

		user := &domain.User{ID: userID, Role: domain.RoleUser}
		covering := domain.LocalGovernment{
			ID: lgID, Status: domain.LocalGovernmentActive,
			Lat: 6.46, Lng: 3.38, CoverageKm: 25,
		}

		f.users.On("GetByID", ctx, userID).Return(user, nil)
		f.lgs.On("List", ctx).Return([]domain.LocalGovernment{covering}, nil)
		f.users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.LocalGovernmentID != nil && *u.LocalGovernmentID == lgID
		})).Return(nil)
		f.pickups.On("Create", ctx, mock.MatchedBy(func(p *domain.Pickup) bool {
			return p.LocalGovernmentID == lgID
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Pickup).ID = uuid.New()
		}).Return(nil)
		f.pickups.On("GetByID", ctx, mock.Anything).Return(&domain.Pickup{Status: domain.PickupRequested, LocalGovernmentID: lgID}, nil)
		f.vehicles.On("ListAssignable", ctx, lgID).Return([]domain.Vehicle{}, nil)
		f.stream.On("PublishAssignEvent", ctx, mock.Anything).Return(nil)

		_, err := f.uc.Create(ctx, session, validReq)

		assert.NoError(t, err)
		f.users.AssertExpectations(t)
	})

	t.Run("uncovered location rejected", func(t *testing.T) {
		f := newPickupFixture()

		user := &domain.User{ID: userID, Role: domain.RoleUser}
		remote := domain.LocalGovernment{
			ID: uuid.New(), Status: domain.LocalGovernmentActive,
			Lat: 52.52, Lng: 13.40, CoverageKm: 10,
		}

		f.users.On("GetByID", ctx, userID).Return(user, nil)
		f.lgs.On("List", ctx).Return([]domain.LocalGovernment{remote}, nil)

		_, err := f.uc.Create(ctx, session, validReq)

		assert.Equal(t, apperrors.ErrNoLocalGovernment, err)
		f.pickups.AssertNotCalled(t, "Create")
	})
}

func TestPickupUseCase_RoleScoping(t *testing.T) {
	ctx := context.Background()
	lgID := uuid.New()
	ownerID := uuid.New()
	driverID := uuid.New()
	pickupID := uuid.New()

	pickup := &domain.Pickup{
		ID:                pickupID,
		UserID:            ownerID,
		AssignedDriverID:  &driverID,
		LocalGovernmentID: lgID,
		Status:            domain.PickupAssigned,
	}

	cases := []struct {
		name    string
		session dto.Session
		visible bool
	}{
		{"owner sees own pickup", dto.Session{UserID: ownerID, Role: domain.RoleUser}, true},
		{"stranger gets not found", dto.Session{UserID: uuid.New(), Role: domain.RoleUser}, false},
		{"assigned driver sees pickup", dto.Session{UserID: driverID, Role: domain.RoleDriver}, true},
		{"other driver gets not found", dto.Session{UserID: uuid.New(), Role: domain.RoleDriver}, false},
		{"admin of municipality sees pickup", dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: &lgID}, true},
		{"admin of another municipality gets not found", dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: ptrUUID(uuid.New())}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPickupFixture()
			f.pickups.On("GetByID", ctx, pickupID).Return(pickup, nil)

			got, err := f.uc.GetByID(ctx, tc.session, pickupID)
			if tc.visible {
				assert.NoError(t, err)
				assert.Equal(t, pickupID, got.ID)
			} else {
				assert.Equal(t, apperrors.ErrPickupNotFound, err)
			}
		})
	}
}

func TestPickupUseCase_Update(t *testing.T) {
	ctx := context.Background()
	lgID := uuid.New()
	ownerID := uuid.New()
	driverID := uuid.New()
	vehicleID := uuid.New()
	pickupID := uuid.New()

	t.Run("user cancels before assignment", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{ID: pickupID, UserID: ownerID, LocalGovernmentID: lgID, Status: domain.PickupRequested}
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)
		f.pickups.On("Update", ctx, mock.MatchedBy(func(up *domain.Pickup) bool {
			return up.Status == domain.PickupCancelled
		})).Return(nil)

		session := dto.Session{UserID: ownerID, Role: domain.RoleUser}
		got, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			Status: ptrString("cancelled"),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PickupCancelled, got.Status)
	})

	t.Run("user cannot cancel after assignment", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{ID: pickupID, UserID: ownerID, VehicleID: &vehicleID, LocalGovernmentID: lgID, Status: domain.PickupAssigned}
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)

		session := dto.Session{UserID: ownerID, Role: domain.RoleUser}
		_, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			Status: ptrString("cancelled"),
		})

		assert.Equal(t, apperrors.ErrInvalidStatusTransition, err)
	})

	t.Run("user cannot mark pickup completed", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{ID: pickupID, UserID: ownerID, LocalGovernmentID: lgID, Status: domain.PickupInProgress, AssignedDriverID: &driverID}
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)

		session := dto.Session{UserID: ownerID, Role: domain.RoleUser}
		_, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			Status: ptrString("completed"),
		})

		assert.Equal(t, apperrors.ErrForbidden, err)
	})

	t.Run("driver completing pickup releases vehicle and stamps time", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{
			ID: pickupID, UserID: ownerID,
			VehicleID: &vehicleID, AssignedDriverID: &driverID,
			LocalGovernmentID: lgID, Status: domain.PickupInProgress,
		}
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)
		f.vehicles.On("Release", ctx, vehicleID).Return(nil)
		f.pickups.On("Update", ctx, mock.MatchedBy(func(up *domain.Pickup) bool {
			return up.Status == domain.PickupCompleted && up.CompletedAt != nil
		})).Return(nil)

		session := dto.Session{UserID: driverID, Role: domain.RoleDriver}
		got, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			Status:       ptrString("completed"),
			ActualWeight: ptrFloat64(18.5),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PickupCompleted, got.Status)
		f.vehicles.AssertCalled(t, "Release", ctx, vehicleID)
	})

	t.Run("repeated completion does not release vehicle twice", func(t *testing.T) {
		f := newPickupFixture()

		done := time.Now()
		p := &domain.Pickup{
			ID: pickupID, UserID: ownerID,
			VehicleID: &vehicleID, AssignedDriverID: &driverID,
			LocalGovernmentID: lgID, Status: domain.PickupCompleted,
			CompletedAt: &done,
		}
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)
		f.pickups.On("Update", ctx, mock.Anything).Return(nil)

		session := dto.Session{UserID: driverID, Role: domain.RoleDriver}
		_, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			Status: ptrString("completed"),
		})

		assert.NoError(t, err)
		f.vehicles.AssertNotCalled(t, "Release")
	})

	t.Run("admin manual assignment claims the vehicle", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{ID: pickupID, UserID: ownerID, LocalGovernmentID: lgID, Status: domain.PickupRequested}
		vehicle := &domain.Vehicle{ID: vehicleID, LocalGovernmentID: lgID, DriverID: &driverID, Status: domain.VehicleAvailable}

		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)
		f.vehicles.On("GetByID", ctx, vehicleID).Return(vehicle, nil)
		f.vehicles.On("Claim", ctx, vehicleID).Return(true, nil)
		f.pickups.On("Update", ctx, mock.MatchedBy(func(up *domain.Pickup) bool {
			return up.Status == domain.PickupAssigned &&
				up.VehicleID != nil && *up.VehicleID == vehicleID &&
				up.AssignedDriverID != nil && *up.AssignedDriverID == driverID
		})).Return(nil)

		session := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: &lgID}
		got, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			VehicleID: &vehicleID,
			Status:    ptrString("assigned"),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PickupAssigned, got.Status)
	})

	t.Run("admin assignment of busy vehicle conflicts", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{ID: pickupID, UserID: ownerID, LocalGovernmentID: lgID, Status: domain.PickupRequested}
		vehicle := &domain.Vehicle{ID: vehicleID, LocalGovernmentID: lgID, Status: domain.VehicleOnDuty}

		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)
		f.vehicles.On("GetByID", ctx, vehicleID).Return(vehicle, nil)
		f.vehicles.On("Claim", ctx, vehicleID).Return(false, nil)

		session := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: &lgID}
		_, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			VehicleID: &vehicleID,
		})

		assert.Equal(t, apperrors.ErrVehicleUnavailable, err)
	})

	t.Run("admin cannot skip to completed from requested", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{ID: pickupID, UserID: ownerID, LocalGovernmentID: lgID, Status: domain.PickupRequested}
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)

		session := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: &lgID}
		_, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			Status: ptrString("completed"),
		})

		assert.Equal(t, apperrors.ErrInvalidStatusTransition, err)
	})

	t.Run("feedback only on completed pickups", func(t *testing.T) {
		f := newPickupFixture()

		p := &domain.Pickup{ID: pickupID, UserID: ownerID, LocalGovernmentID: lgID, Status: domain.PickupAssigned}
		f.pickups.On("GetByID", ctx, pickupID).Return(p, nil)

		session := dto.Session{UserID: ownerID, Role: domain.RoleUser}
		rating := 5
		_, err := f.uc.Update(ctx, session, pickupID, dto.UpdatePickupRequest{
			FeedbackRating: &rating,
		})

		assert.Error(t, err)
	})
}

func TestPickupUseCase_List(t *testing.T) {
	ctx := context.Background()
	lgID := uuid.New()

	t.Run("citizen list is forced to own pickups", func(t *testing.T) {
		f := newPickupFixture()
		userID := uuid.New()

		f.pickups.On("List", ctx, mock.MatchedBy(func(filter repository.PickupFilter) bool {
			return filter.UserID != nil && *filter.UserID == userID
		})).Return([]domain.Pickup{}, nil)

		session := dto.Session{UserID: userID, Role: domain.RoleUser}
		// Попытка подсмотреть чужие заявки через фильтр игнорируется
		foreign := uuid.New()
		_, err := f.uc.List(ctx, session, dto.PickupListQuery{UserID: &foreign})

		assert.NoError(t, err)
		f.pickups.AssertExpectations(t)
	})

	t.Run("admin without municipality rejected", func(t *testing.T) {
		f := newPickupFixture()

		session := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin}
		_, err := f.uc.List(ctx, session, dto.PickupListQuery{})

		assert.Equal(t, apperrors.ErrNoLocalGovernment, err)
	})

	t.Run("invalid status filter rejected", func(t *testing.T) {
		f := newPickupFixture()

		session := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: &lgID}
		bad := "teleported"
		_, err := f.uc.List(ctx, session, dto.PickupListQuery{Status: &bad})

		assert.Equal(t, apperrors.ErrInvalidRequest, err)
	})
}

func ptrUUID(id uuid.UUID) *uuid.UUID {
	return &id
}
