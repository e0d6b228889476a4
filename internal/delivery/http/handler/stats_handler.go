package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waste-management/internal/delivery/http/middleware"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/usecase"
)

// StatsHandler обрабатывает запросы сводок дашборда
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Возвращает сводку в форме роли вызывающего: админ - муниципалитет, водитель - свои наряды, житель - свои заявки
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param localGovernment query string false "Explicit municipality (admin only)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/dashboard/stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	session, err := middleware.GetSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	// Админ может запросить сводку другого муниципалитета явно
	if q := c.Query("localGovernment"); q != "" && session.IsAdmin() {
		lgID, err := uuid.Parse(q)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
		session.LocalGovernmentID = &lgID
	}

	h.logger.Debug("Handling dashboard stats request",
		zap.String("role", string(session.Role)))

	stats, err := h.statsUC.GetStats(c.Context(), session)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}
