package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetAdminStats получает сводку админа из кеша
func (r *cacheRepository) GetAdminStats(ctx context.Context, localGovernmentID uuid.UUID) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	ok, err := r.getJSON(ctx, adminStatsKey(localGovernmentID), &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

// SetAdminStats сохраняет сводку админа в кеше
func (r *cacheRepository) SetAdminStats(ctx context.Context, localGovernmentID uuid.UUID, stats *domain.AdminStats, ttl time.Duration) error {
	return r.setJSON(ctx, adminStatsKey(localGovernmentID), stats, ttl)
}

// GetDriverStats получает сводку водителя из кеша
func (r *cacheRepository) GetDriverStats(ctx context.Context, driverID uuid.UUID) (*domain.DriverStats, error) {
	var stats domain.DriverStats
	ok, err := r.getJSON(ctx, driverStatsKey(driverID), &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

// SetDriverStats сохраняет сводку водителя в кеше
func (r *cacheRepository) SetDriverStats(ctx context.Context, driverID uuid.UUID, stats *domain.DriverStats, ttl time.Duration) error {
	return r.setJSON(ctx, driverStatsKey(driverID), stats, ttl)
}

// GetUserStats получает сводку жителя из кеша
func (r *cacheRepository) GetUserStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	var stats domain.UserStats
	ok, err := r.getJSON(ctx, userStatsKey(userID), &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

// SetUserStats сохраняет сводку жителя в кеше
func (r *cacheRepository) SetUserStats(ctx context.Context, userID uuid.UUID, stats *domain.UserStats, ttl time.Duration) error {
	return r.setJSON(ctx, userStatsKey(userID), stats, ttl)
}

// getJSON читает ключ и десериализует значение; false при промахе
func (r *cacheRepository) getJSON(ctx context.Context, key string, target interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil // Cache miss
	}

	if err := json.Unmarshal(data, target); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal cached value: %w", err)
	}

	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for cache: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}

func adminStatsKey(localGovernmentID uuid.UUID) string {
	return fmt.Sprintf("stats:admin:%s", localGovernmentID)
}

func driverStatsKey(driverID uuid.UUID) string {
	return fmt.Sprintf("stats:driver:%s", driverID)
}

func userStatsKey(userID uuid.UUID) string {
	return fmt.Sprintf("stats:user:%s", userID)
}
