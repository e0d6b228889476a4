package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/usecase"
	"github.com/waste-management/internal/usecase/dto"
)

func TestUserUseCase_CreateUser(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	lgID := uuid.New()
	session := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: &lgID}

	t.Run("driver account lands in admin municipality", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockLGs := &MockLocalGovernmentRepository{}
		uc := usecase.NewUserUseCase(mockUsers, mockLGs, logger)

		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleDriver &&
				u.LocalGovernmentID != nil && *u.LocalGovernmentID == lgID
		})).Return(nil)

		_, err := uc.CreateUser(ctx, session, dto.CreateUserRequest{
			FirstName: "Musa", LastName: "Bello",
			Email: "musa@example.com", Password: "secret123",
			Role: "driver",
		})

		assert.NoError(t, err)
		mockUsers.AssertExpectations(t)
	})

	t.Run("admin without municipality rejected", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockLGs := &MockLocalGovernmentRepository{}
		uc := usecase.NewUserUseCase(mockUsers, mockLGs, logger)

		orphan := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin}
		_, err := uc.CreateUser(ctx, orphan, dto.CreateUserRequest{
			FirstName: "Musa", LastName: "Bello",
			Email: "musa@example.com", Password: "secret123",
			Role: "driver",
		})

		assert.Equal(t, apperrors.ErrNoLocalGovernment, err)
	})
}

func TestUserUseCase_GetUser(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	lgID := uuid.New()
	session := dto.Session{UserID: uuid.New(), Role: domain.RoleAdmin, LocalGovernmentID: &lgID}

	t.Run("user from another municipality looks missing", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockLGs := &MockLocalGovernmentRepository{}
		uc := usecase.NewUserUseCase(mockUsers, mockLGs, logger)

		otherLG := uuid.New()
		targetID := uuid.New()
		mockUsers.On("GetByID", ctx, targetID).Return(&domain.User{
			ID: targetID, LocalGovernmentID: &otherLG,
		}, nil)

		_, err := uc.GetUser(ctx, session, targetID)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("own municipality user visible", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockLGs := &MockLocalGovernmentRepository{}
		uc := usecase.NewUserUseCase(mockUsers, mockLGs, logger)

		targetID := uuid.New()
		mockUsers.On("GetByID", ctx, targetID).Return(&domain.User{
			ID: targetID, LocalGovernmentID: &lgID,
		}, nil)

		got, err := uc.GetUser(ctx, session, targetID)

		assert.NoError(t, err)
		assert.Equal(t, targetID, got.ID)
	})
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("half a coordinate pair rejected", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockLGs := &MockLocalGovernmentRepository{}
		uc := usecase.NewUserUseCase(mockUsers, mockLGs, logger)

		userID := uuid.New()
		mockUsers.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil)

		_, err := uc.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{
			Lat: ptrFloat64(6.5),
		})

		assert.Equal(t, apperrors.ErrInvalidCoordinates, err)
		mockUsers.AssertNotCalled(t, "Update")
	})
}
