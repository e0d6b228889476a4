package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/waste-management/internal/delivery/http/middleware"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/pkg/validator"
	"github.com/waste-management/internal/usecase"
	"github.com/waste-management/internal/usecase/dto"
)

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// Signup godoc
// @Summary Register a citizen account
// @Description Регистрирует жителя и сразу выдает пару токенов
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	resp, err := h.authUC.Signup(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}

// Signin godoc
// @Summary Sign in
// @Description Проверяет учетные данные и выдает пару токенов
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SigninRequest true "Credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed)
	}

	resp, err := h.authUC.Signin(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Refresh godoc
// @Summary Refresh the token pair
// @Description Обменивает refresh токен на новую пару токенов
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed)
	}

	resp, err := h.authUC.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Session godoc
// @Summary Current session
// @Description Возвращает пользователя текущей сессии
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.authUC.Session(c.Context(), session.UserID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// CompleteOnboarding godoc
// @Summary Complete onboarding
// @Description Сохраняет домашний адрес жителя и закрывает онбординг
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OnboardingRequest true "Home location"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/auth/onboarding [post]
func (h *AuthHandler) CompleteOnboarding(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	user, err := h.authUC.CompleteOnboarding(c.Context(), session.UserID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// ChangePassword godoc
// @Summary Change password
// @Description Меняет пароль после проверки текущего
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/users/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed)
	}

	if err := h.authUC.ChangePassword(c.Context(), session.UserID, req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"changed": true}, nil)
}
