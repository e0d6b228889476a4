package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/usecase/dto"
)

// StatsUseCase обрабатывает сводки дашборда, используя кеш когда возможно
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetStats возвращает сводку в форме роли вызывающего.
// Сводки разных субъектов кешируются под разными ключами и не смешиваются.
func (uc *StatsUseCase) GetStats(ctx context.Context, session dto.Session) (interface{}, error) {
	switch session.Role {
	case domain.RoleAdmin:
		return uc.adminStats(ctx, session)
	case domain.RoleDriver:
		return uc.driverStats(ctx, session)
	case domain.RoleUser:
		return uc.userStats(ctx, session)
	}
	return nil, apperrors.ErrForbidden
}

func (uc *StatsUseCase) adminStats(ctx context.Context, session dto.Session) (*domain.AdminStats, error) {
	if session.LocalGovernmentID == nil {
		return nil, apperrors.ErrNoLocalGovernment
	}
	lgID := *session.LocalGovernmentID

	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetAdminStats(ctx, lgID)
	if err == nil && cached != nil {
		uc.logger.Debug("Admin stats fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get admin stats from cache", zap.Error(err))
	}

	// 2. Получаем из БД
	stats, err := uc.statsRepo.GetAdminStats(ctx, lgID)
	if err != nil {
		uc.logger.Error("Failed to fetch admin stats", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetAdminStats(ctx, lgID, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache admin stats", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}
	return stats, nil
}

func (uc *StatsUseCase) driverStats(ctx context.Context, session dto.Session) (*domain.DriverStats, error) {
	cached, err := uc.cacheRepo.GetDriverStats(ctx, session.UserID)
	if err == nil && cached != nil {
		uc.logger.Debug("Driver stats fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get driver stats from cache", zap.Error(err))
	}

	stats, err := uc.statsRepo.GetDriverStats(ctx, session.UserID)
	if err != nil {
		uc.logger.Error("Failed to fetch driver stats", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if err := uc.cacheRepo.SetDriverStats(ctx, session.UserID, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache driver stats", zap.Error(err))
	}
	return stats, nil
}

func (uc *StatsUseCase) userStats(ctx context.Context, session dto.Session) (*domain.UserStats, error) {
	cached, err := uc.cacheRepo.GetUserStats(ctx, session.UserID)
	if err == nil && cached != nil {
		uc.logger.Debug("User stats fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get user stats from cache", zap.Error(err))
	}

	stats, err := uc.statsRepo.GetUserStats(ctx, session.UserID)
	if err != nil {
		uc.logger.Error("Failed to fetch user stats", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if err := uc.cacheRepo.SetUserStats(ctx, session.UserID, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache user stats", zap.Error(err))
	}
	return stats, nil
}
