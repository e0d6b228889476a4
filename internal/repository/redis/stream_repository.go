package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
)

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// MKSTREAM автоматически создаст стрим, если он не существует
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		// Игнорируем ошибку BUSYGROUP - группа уже существует
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// PublishAssignEvent публикует событие повторного подбора машины
func (r *streamRepository) PublishAssignEvent(ctx context.Context, event domain.PickupAssignEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to marshal assign event",
			zap.String("pickup_id", event.PickupID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to marshal assign event: %w", err)
	}

	result, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamPickupAssign,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()

	if err != nil {
		r.logger.Error("Failed to publish assign event",
			zap.String("pickup_id", event.PickupID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to publish assign event: %w", err)
	}

	r.logger.Debug("Assign event published",
		zap.String("pickup_id", event.PickupID.String()),
		zap.Int("attempt", event.Attempt),
		zap.String("message_id", result))
	return nil
}

// ConsumeBatch неблокирующе читает до count сообщений из стрима
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    int64(count),
		NoAck:    false,
	}).Result()

	if err != nil {
		if err == redis.Nil {
			return nil, nil // очередь пуста
		}
		r.logger.Error("Failed to read from stream",
			zap.String("stream", stream),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	messages := make([]domain.StreamMessage, 0, count)
	for _, s := range result {
		for _, msg := range s.Messages {
			data, ok := msg.Values["data"].(string)
			if !ok {
				r.logger.Warn("Message does not contain 'data' field",
					zap.String("message_id", msg.ID))
				continue
			}
			messages = append(messages, domain.StreamMessage{
				ID:   msg.ID,
				Data: data,
			})
		}
	}

	return messages, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	err := r.client.XAck(ctx, stream, group, messageID).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged",
		zap.String("message_id", messageID))
	return nil
}
