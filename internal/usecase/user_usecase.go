package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/password"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/usecase/dto"
)

// UserUseCase обрабатывает профиль и административное управление учетками
type UserUseCase struct {
	userRepo repository.UserRepository
	lgRepo   repository.LocalGovernmentRepository
	logger   *zap.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(
	userRepo repository.UserRepository,
	lgRepo repository.LocalGovernmentRepository,
	logger *zap.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		lgRepo:   lgRepo,
		logger:   logger,
	}
}

// GetProfile возвращает собственный профиль пользователя
func (uc *UserUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile обновляет собственный профиль пользователя
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.Lat != nil || req.Lng != nil {
		// Координаты обновляются только парой
		if req.Lat == nil || req.Lng == nil {
			return nil, apperrors.ErrInvalidCoordinates
		}
		if !utils.ValidateCoordinates(*req.Lat, *req.Lng) {
			return nil, apperrors.ErrInvalidCoordinates
		}
		user.Lat = req.Lat
		user.Lng = req.Lng
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update profile", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Profile updated", zap.String("user_id", userID.String()))
	return user, nil
}

// GetLocalGovernment возвращает муниципалитет пользователя
func (uc *UserUseCase) GetLocalGovernment(ctx context.Context, userID uuid.UUID) (*domain.LocalGovernment, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.LocalGovernmentID == nil {
		return nil, apperrors.ErrNoLocalGovernment
	}

	lg, err := uc.lgRepo.GetByID(ctx, *user.LocalGovernmentID)
	if err != nil {
		uc.logger.Error("Failed to fetch local government", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if lg == nil {
		return nil, apperrors.ErrLocalGovernmentNotFound
	}
	return lg, nil
}

// ListUsers возвращает пользователей муниципалитета админа.
// Опциональный фильтр по роли (например только водители).
func (uc *UserUseCase) ListUsers(ctx context.Context, session dto.Session, role *domain.Role) ([]domain.User, error) {
	if session.LocalGovernmentID == nil {
		return nil, apperrors.ErrNoLocalGovernment
	}
	if role != nil && !role.IsValid() {
		return nil, apperrors.ErrInvalidRequest
	}

	users, err := uc.userRepo.List(ctx, repository.UserFilter{
		LocalGovernmentID: session.LocalGovernmentID,
		Role:              role,
	})
	if err != nil {
		uc.logger.Error("Failed to list users", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return users, nil
}

// CreateUser заводит учетку в муниципалитете админа
func (uc *UserUseCase) CreateUser(ctx context.Context, session dto.Session, req dto.CreateUserRequest) (*domain.User, error) {
	if session.LocalGovernmentID == nil {
		return nil, apperrors.ErrNoLocalGovernment
	}

	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidRequest
	}
	if err := password.Validate(req.Password); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"password": err.Error(),
		})
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	user := &domain.User{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              role,
		Phone:             req.Phone,
		LocalGovernmentID: session.LocalGovernmentID,
		LicenseNumber:     req.LicenseNumber,
		LicenseExpiry:     req.LicenseExpiry,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if err == apperrors.ErrEmailInUse {
			return nil, err
		}
		uc.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("admin_id", session.UserID.String()))
	return user, nil
}

// GetUser возвращает учетку из муниципалитета админа
func (uc *UserUseCase) GetUser(ctx context.Context, session dto.Session, id uuid.UUID) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil || !uc.sameLocalGovernment(session, user) {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateUser правит учетку из муниципалитета админа
func (uc *UserUseCase) UpdateUser(ctx context.Context, session dto.Session, id uuid.UUID, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := uc.GetUser(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.IsValid() {
			return nil, apperrors.ErrInvalidRequest
		}
		user.Role = role
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.LicenseNumber != nil {
		user.LicenseNumber = req.LicenseNumber
	}
	if req.LicenseExpiry != nil {
		user.LicenseExpiry = req.LicenseExpiry
	}
	if req.LicenseVerified != nil {
		user.LicenseVerified = *req.LicenseVerified
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if err == apperrors.ErrEmailInUse {
			return nil, err
		}
		uc.logger.Error("Failed to update user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("User updated by admin",
		zap.String("user_id", id.String()),
		zap.String("admin_id", session.UserID.String()))
	return user, nil
}

// DeleteUser удаляет учетку из муниципалитета админа
func (uc *UserUseCase) DeleteUser(ctx context.Context, session dto.Session, id uuid.UUID) error {
	if _, err := uc.GetUser(ctx, session, id); err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete user", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	uc.logger.Info("User deleted by admin",
		zap.String("user_id", id.String()),
		zap.String("admin_id", session.UserID.String()))
	return nil
}

// sameLocalGovernment - админ видит только учетки своего муниципалитета
func (uc *UserUseCase) sameLocalGovernment(session dto.Session, user *domain.User) bool {
	if session.LocalGovernmentID == nil {
		return false
	}
	return user.LocalGovernmentID != nil && *user.LocalGovernmentID == *session.LocalGovernmentID
}
