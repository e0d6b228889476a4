package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waste-management/internal/delivery/http/middleware"
	"github.com/waste-management/internal/domain"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/pkg/validator"
	"github.com/waste-management/internal/usecase"
	"github.com/waste-management/internal/usecase/dto"
)

// UserHandler обрабатывает запросы профиля и управления учетками
type UserHandler struct {
	userUC *usecase.UserUseCase
	logger *zap.Logger
}

// NewUserHandler создает новый экземпляр UserHandler
func NewUserHandler(userUC *usecase.UserUseCase, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.GetProfile(c.Context(), session.UserID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed)
	}

	user, err := h.userUC.UpdateProfile(c.Context(), session.UserID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// GetLocalGovernment godoc
// @Summary Get the local government a user belongs to
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id}/local-government [get]
func (h *UserHandler) GetLocalGovernment(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	// Чужой муниципалитет доступен только админу
	if id != session.UserID && !session.IsAdmin() {
		return utils.SendError(c, apperrors.ErrUserNotFound)
	}

	lg, err := h.userUC.GetLocalGovernment(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, lg, nil)
}

// ListUsers godoc
// @Summary List users of the municipality
// @Description Админ видит только учетки своего муниципалитета
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(user, driver, admin)
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var role *domain.Role
	if q := c.Query("role"); q != "" {
		r := domain.Role(q)
		role = &r
	}

	users, err := h.userUC.ListUsers(c.Context(), session, role)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, users, &utils.Meta{Total: len(users)})
}

// ListDrivers godoc
// @Summary List drivers of the municipality
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/admin/drivers [get]
func (h *UserHandler) ListDrivers(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	role := domain.RoleDriver
	drivers, err := h.userUC.ListUsers(c.Context(), session, &role)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, drivers, &utils.Meta{Total: len(drivers)})
}

// CreateUser godoc
// @Summary Create an account in the municipality
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/admin/users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	user, err := h.userUC.CreateUser(c.Context(), session, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, user)
}

// GetUser godoc
// @Summary Get an account from the municipality
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	user, err := h.userUC.GetUser(c.Context(), session, id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// UpdateUser godoc
// @Summary Update an account from the municipality
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Account fields"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed)
	}

	user, err := h.userUC.UpdateUser(c.Context(), session, id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// DeleteUser godoc
// @Summary Delete an account from the municipality
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.userUC.DeleteUser(c.Context(), session, id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
