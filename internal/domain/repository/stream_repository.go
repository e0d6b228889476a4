package repository

import (
	"context"

	"github.com/waste-management/internal/domain"
)

// StreamRepository определяет методы для работы с Redis Streams
type StreamRepository interface {
	// CreateConsumerGroup создаёт consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishAssignEvent публикует событие повторного подбора машины
	PublishAssignEvent(ctx context.Context, event domain.PickupAssignEvent) error

	// ConsumeBatch неблокирующе читает до count сообщений из стрима
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
