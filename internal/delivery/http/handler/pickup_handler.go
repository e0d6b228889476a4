package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waste-management/internal/delivery/http/middleware"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/pkg/validator"
	"github.com/waste-management/internal/usecase"
	"github.com/waste-management/internal/usecase/dto"
)

// PickupHandler обрабатывает запросы заявок на вывоз
type PickupHandler struct {
	pickupUC *usecase.PickupUseCase
	logger   *zap.Logger
}

// NewPickupHandler создает новый экземпляр PickupHandler
func NewPickupHandler(pickupUC *usecase.PickupUseCase, logger *zap.Logger) *PickupHandler {
	return &PickupHandler{
		pickupUC: pickupUC,
		logger:   logger,
	}
}

// Create godoc
// @Summary Request a waste pickup
// @Description Создает заявку и сразу пробует подобрать ближайшую машину
// @Tags Pickups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePickupRequest true "Pickup data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/pickups [post]
func (h *PickupHandler) Create(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CreatePickupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	pickup, err := h.pickupUC.Create(c.Context(), session, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, pickup)
}

// List godoc
// @Summary List visible pickups
// @Description Житель видит свои заявки, водитель - назначенные ему, админ - весь муниципалитет
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param user query string false "Filter by citizen (admin only)"
// @Param date_from query string false "Scheduled from (RFC3339)"
// @Param date_to query string false "Scheduled to (RFC3339)"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/pickups [get]
func (h *PickupHandler) List(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var query dto.PickupListQuery
	if s := c.Query("status"); s != "" {
		query.Status = &s
	}
	if u := c.Query("user"); u != "" {
		userID, err := uuid.Parse(u)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
		query.UserID = &userID
	}
	if v := c.Query("vehicle"); v != "" {
		vehicleID, err := uuid.Parse(v)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
		query.VehicleID = &vehicleID
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
		query.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
		query.DateTo = &t
	}

	pickups, err := h.pickupUC.List(c.Context(), session, query)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, pickups, &utils.Meta{Total: len(pickups)})
}

// Get godoc
// @Summary Get a pickup
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pickup ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/pickups/{id} [get]
func (h *PickupHandler) Get(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	pickup, err := h.pickupUC.GetByID(c.Context(), session, id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, pickup, nil)
}

// Update godoc
// @Summary Update a pickup
// @Description Какие поля применяются, зависит от роли: житель - отмена и отзыв, водитель - ход работ, админ - все
// @Tags Pickups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pickup ID"
// @Param request body dto.UpdatePickupRequest true "Pickup fields"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/pickups/{id} [put]
func (h *PickupHandler) Update(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.UpdatePickupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	pickup, err := h.pickupUC.Update(c.Context(), session, id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, pickup, nil)
}

// Delete godoc
// @Summary Delete a pickup
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pickup ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/pickups/{id} [delete]
func (h *PickupHandler) Delete(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.pickupUC.Delete(c.Context(), session, id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
