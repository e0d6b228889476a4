package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/waste-management/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; nil, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetAdminStats получает сводку админа из кеша
	GetAdminStats(ctx context.Context, localGovernmentID uuid.UUID) (*domain.AdminStats, error)

	// SetAdminStats сохраняет сводку админа в кеше
	SetAdminStats(ctx context.Context, localGovernmentID uuid.UUID, stats *domain.AdminStats, ttl time.Duration) error

	// GetDriverStats получает сводку водителя из кеша
	GetDriverStats(ctx context.Context, driverID uuid.UUID) (*domain.DriverStats, error)

	// SetDriverStats сохраняет сводку водителя в кеше
	SetDriverStats(ctx context.Context, driverID uuid.UUID, stats *domain.DriverStats, ttl time.Duration) error

	// GetUserStats получает сводку жителя из кеша
	GetUserStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)

	// SetUserStats сохраняет сводку жителя в кеше
	SetUserStats(ctx context.Context, userID uuid.UUID, stats *domain.UserStats, ttl time.Duration) error
}
