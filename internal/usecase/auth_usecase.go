package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waste-management/internal/auth"
	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/password"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/usecase/dto"
)

// AuthUseCase обрабатывает регистрацию, вход и жизненный цикл сессии
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwt      *auth.JWTManager
	logger   *zap.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(
	userRepo repository.UserRepository,
	jwt *auth.JWTManager,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		jwt:      jwt,
		logger:   logger,
	}
}

// Signup регистрирует жителя. Роль всегда user: водителей и админов
// заводят только админы через управление пользователями.
func (uc *AuthUseCase) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := password.Validate(req.Password); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"password": err.Error(),
		})
	}

	existing, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if existing != nil {
		return nil, apperrors.ErrEmailInUse
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	user := &domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Гонка между проверкой и вставкой: unique violation уже
		// замаплен репозиторием
		if err == apperrors.ErrEmailInUse {
			return nil, err
		}
		uc.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	tokens, err := uc.jwt.Issue(user.ID, string(user.Role), user.LocalGovernmentID)
	if err != nil {
		uc.logger.Error("Failed to issue tokens", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	uc.logger.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &dto.AuthResponse{User: user, Tokens: tokens}, nil
}

// Signin проверяет учетные данные и выдает пару токенов
func (uc *AuthUseCase) Signin(ctx context.Context, req dto.SigninRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Error("Failed to fetch user by email", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	// Один и тот же ответ для неизвестного email и неверного пароля
	if user == nil || !password.Compare(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := uc.jwt.Issue(user.ID, string(user.Role), user.LocalGovernmentID)
	if err != nil {
		uc.logger.Error("Failed to issue tokens", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	uc.logger.Info("User signed in", zap.String("user_id", user.ID.String()))

	return &dto.AuthResponse{User: user, Tokens: tokens}, nil
}

// Refresh обменивает refresh токен на новую пару токенов.
// Роль и муниципалитет перечитываются из БД: они могли измениться
// с момента выдачи токена.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := uc.jwt.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch user for refresh", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil {
		return nil, apperrors.ErrInvalidToken
	}

	tokens, err := uc.jwt.Issue(user.ID, string(user.Role), user.LocalGovernmentID)
	if err != nil {
		uc.logger.Error("Failed to issue tokens", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	return &dto.AuthResponse{User: user, Tokens: tokens}, nil
}

// Session возвращает текущего пользователя по его id из токена
func (uc *AuthUseCase) Session(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch session user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// CompleteOnboarding сохраняет домашний адрес жителя и помечает
// онбординг завершенным
func (uc *AuthUseCase) CompleteOnboarding(ctx context.Context, userID uuid.UUID, req dto.OnboardingRequest) (*domain.User, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch user for onboarding", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	loc := domain.Location{
		Address: req.Address,
		City:    req.City,
		Lat:     req.Lat,
		Lng:     req.Lng,
	}
	if err := uc.userRepo.SetLocation(ctx, userID, loc); err != nil {
		uc.logger.Error("Failed to save onboarding location", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Onboarding completed", zap.String("user_id", userID.String()))

	return uc.userRepo.GetByID(ctx, userID)
}

// ChangePassword меняет пароль после проверки текущего
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	if err := password.Validate(req.NewPassword); err != nil {
		return apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"new_password": err.Error(),
		})
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch user for password change", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if !password.Compare(user.PasswordHash, req.CurrentPassword) {
		return apperrors.ErrPasswordMismatch
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		uc.logger.Error("Failed to hash new password", zap.Error(err))
		return apperrors.ErrInternalServer
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		uc.logger.Error("Failed to update password", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	uc.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}
