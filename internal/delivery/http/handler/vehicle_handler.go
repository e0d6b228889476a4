package handler

import (
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

// VehicleHandler обрабатывает запросы парка машин
type VehicleHandler struct {
	vehicleUC *usecase.VehicleUseCase
	logger    *zap.Logger
}

// NewVehicleHandler создает новый экземпляр VehicleHandler
func NewVehicleHandler(vehicleUC *usecase.VehicleUseCase, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleUC: vehicleUC,
		logger:    logger,
	}
}

// List godoc
// @Summary List vehicles
// @Description Админ видит только машины своего муниципалитета
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(available, on_duty, maintenance, inactive)
// @Param available query bool false "Only available vehicles without a driver"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	query := dto.VehicleListQuery{
		AvailableOnly: c.QueryBool("available"),
	}
	if s := c.Query("status"); s != "" {
		query.Status = &s
	}
	if lg := c.Query("local_government"); lg != "" {
		lgID, err := uuid.Parse(lg)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
		query.LocalGovernmentID = &lgID
	}

	vehicles, err := h.vehicleUC.List(c.Context(), session, query)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, vehicles, &utils.Meta{Total: len(vehicles)})
}

// Get godoc
// @Summary Get a vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/vehicles/{id} [get]
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	v, err := h.vehicleUC.GetByID(c.Context(), session, id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, v, nil)
}

// GetMine godoc
// @Summary Get the vehicle assigned to the calling driver
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/vehicles/mine [get]
func (h *VehicleHandler) GetMine(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	v, err := h.vehicleUC.GetByDriver(c.Context(), session.UserID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, v, nil)
}

// Create godoc
// @Summary Register a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVehicleRequest true "Vehicle data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	v, err := h.vehicleUC.Create(c.Context(), session, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, v)
}

// Update godoc
// @Summary Update a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body dto.UpdateVehicleRequest true "Vehicle fields"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed)
	}

	v, err := h.vehicleUC.Update(c.Context(), session, id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, v, nil)
}

// UpdateLocation godoc
// @Summary Report vehicle position
// @Description Водитель обновляет координаты своей машины
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/vehicles/{id}/location [put]
func (h *VehicleHandler) UpdateLocation(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req struct {
		Lat float64 `json:"lat" validate:"required"`
		Lng float64 `json:"lng" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	v, err := h.vehicleUC.UpdateLocation(c.Context(), session, id, req.Lat, req.Lng)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, v, nil)
}

// Delete godoc
// @Summary Delete a vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.vehicleUC.Delete(c.Context(), session, id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
