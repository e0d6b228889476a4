package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/waste-management/internal/pkg/errors"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   *errors.AppError `json:"error"`
}

type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Success: false,
			Error:   appErr,
		})
	}

	// Unknown error - return 500, текст внутренней ошибки наружу не отдаём
	return c.Status(500).JSON(ErrorResponse{
		Success: false,
		Error:   errors.ErrInternalServer,
	})
}
