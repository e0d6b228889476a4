package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/pkg/validator"
	"github.com/waste-management/internal/usecase"
	"github.com/waste-management/internal/usecase/dto"
)

// LocalGovernmentHandler обрабатывает справочник муниципалитетов
type LocalGovernmentHandler struct {
	lgUC   *usecase.LocalGovernmentUseCase
	logger *zap.Logger
}

// NewLocalGovernmentHandler создает новый экземпляр LocalGovernmentHandler
func NewLocalGovernmentHandler(lgUC *usecase.LocalGovernmentUseCase, logger *zap.Logger) *LocalGovernmentHandler {
	return &LocalGovernmentHandler{
		lgUC:   lgUC,
		logger: logger,
	}
}

// List godoc
// @Summary List local governments
// @Tags LocalGovernments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/local-governments [get]
func (h *LocalGovernmentHandler) List(c *fiber.Ctx) error {
	lgs, err := h.lgUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, lgs, &utils.Meta{Total: len(lgs)})
}

// Get godoc
// @Summary Get a local government
// @Tags LocalGovernments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Local government ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/local-governments/{id} [get]
func (h *LocalGovernmentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	lg, err := h.lgUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, lg, nil)
}

// Create godoc
// @Summary Create a local government
// @Tags LocalGovernments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLocalGovernmentRequest true "Local government data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/local-governments [post]
func (h *LocalGovernmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLocalGovernmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	lg, err := h.lgUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, lg)
}

// Update godoc
// @Summary Update a local government
// @Tags LocalGovernments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Local government ID"
// @Param request body dto.UpdateLocalGovernmentRequest true "Local government fields"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/local-governments/{id} [put]
func (h *LocalGovernmentHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.UpdateLocalGovernmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrValidationFailed)
	}

	lg, err := h.lgUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, lg, nil)
}

// Delete godoc
// @Summary Delete a local government
// @Tags LocalGovernments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Local government ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/local-governments/{id} [delete]
func (h *LocalGovernmentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.lgUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
