package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/waste-management/internal/domain"
)

// StatsRepository интерфейс для агрегатов дашборда
type StatsRepository interface {
	// GetAdminStats возвращает сводку по муниципалитету
	GetAdminStats(ctx context.Context, localGovernmentID uuid.UUID) (*domain.AdminStats, error)

	// GetDriverStats возвращает сводку по водителю
	GetDriverStats(ctx context.Context, driverID uuid.UUID) (*domain.DriverStats, error)

	// GetUserStats возвращает сводку по жителю
	GetUserStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
}
